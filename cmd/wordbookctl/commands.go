package main

import (
	"bufio"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/internal/word/repository"
	"github.com/tair/wordbook/internal/word/usecase/command"
	"github.com/tair/wordbook/internal/word/usecase/query"
)

// cliSession keys the single quiz a command line run can hold
const cliSession = "wordbookctl"

var searchCommand = &cli.Command{
	Name:      "search",
	Usage:     "search terms and meanings",
	ArgsUsage: "QUERY",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("search takes exactly one QUERY", ExitCodeFlagParseError)
		}

		s := openStores(c)
		results, err := query.NewSearchWordsHandler(s.words).Handle(background(c), query.SearchWordsQuery{Query: c.Args().First()})
		if err != nil {
			return loadError(err)
		}
		if len(results) == 0 {
			return nil
		}

		fmt.Fprintf(c.App.Writer, "🔍 %d개 검색됨\n", len(results))
		tbl := newEntryTable(c.App.Writer, "히라가나", "뜻")
		for _, e := range results {
			tbl.AddRow(e.Term, e.Meaning)
		}
		tbl.Print()
		return nil
	},
}

var favoritesCommand = &cli.Command{
	Name:  "favorites",
	Usage: "list and edit the favorites file",
	Subcommands: []*cli.Command{
		{
			Name:  "list",
			Usage: "print the saved favorites",
			Action: func(c *cli.Context) error {
				s := openStores(c)
				favorites, err := query.NewListFavoritesHandler(s.favorites).Handle(background(c))
				if err != nil {
					return cli.Exit(err, ExitCodeUnknownError)
				}
				if len(favorites) == 0 {
					fmt.Fprintln(c.App.Writer, "즐겨찾기된 단어가 없습니다.")
					return nil
				}

				fmt.Fprintln(c.App.Writer, "📌 즐겨찾기 목록")
				tbl := newEntryTable(c.App.Writer, "히라가나", "뜻")
				for _, e := range favorites {
					tbl.AddRow(e.Term, e.Meaning)
				}
				tbl.Print()
				return nil
			},
		},
		{
			Name:      "add",
			Usage:     "add an entry to the favorites",
			ArgsUsage: "TERM MEANING",
			Action: func(c *cli.Context) error {
				if c.NArg() != 2 {
					return cli.Exit("add takes TERM and MEANING", ExitCodeFlagParseError)
				}

				s := openStores(c)
				cmd := command.AddFavoriteCommand{Term: c.Args().Get(0), Meaning: c.Args().Get(1)}
				res, err := command.NewAddFavoriteHandler(s.favorites, domain.NopPublisher{}).Handle(background(c), cmd)
				if err != nil {
					return cli.Exit(err, ExitCodeUnknownError)
				}

				if res.Added {
					fmt.Fprintf(c.App.Writer, "%s 추가됨\n", cmd.Term)
				} else {
					fmt.Fprintf(c.App.Writer, "%s 이미 즐겨찾기에 있습니다\n", cmd.Term)
				}
				return nil
			},
		},
		{
			Name:      "remove",
			Usage:     "remove favorites by their \"term : meaning\" label",
			ArgsUsage: "LABEL...",
			Action: func(c *cli.Context) error {
				if c.NArg() == 0 {
					return cli.Exit("remove takes at least one LABEL", ExitCodeFlagParseError)
				}

				s := openStores(c)
				res, err := command.NewRemoveFavoritesHandler(s.favorites, domain.NopPublisher{}).Handle(background(c), command.RemoveFavoritesCommand{
					Labels: c.Args().Slice(),
				})
				if err != nil {
					return cli.Exit(err, ExitCodeUnknownError)
				}

				fmt.Fprintf(c.App.Writer, "제거 완료 (%d)\n", res.Removed)
				return nil
			},
		},
	},
}

var quizCommand = &cli.Command{
	Name:  "quiz",
	Usage: "answer ten random meanings with their hiragana, one per line",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "draw the sample from a fixed `SEED`",
		},
	},
	Action: func(c *cli.Context) error {
		ctx := background(c)
		s := openStores(c)
		sessions := repository.NewMemoryQuizSessionRepository(time.Hour)

		start, err := query.NewStartQuizHandler(s.words, sessions, newRand(c)).Handle(ctx, query.StartQuizQuery{SessionID: cliSession})
		if errors.Is(err, domain.ErrNotEnoughWords) {
			fmt.Fprintf(c.App.Writer, "단어가 %d개 이상 있어야 퀴즈가 가능합니다.\n", domain.QuizSize)
			return nil
		}
		if err != nil {
			return loadError(err)
		}

		out := c.App.Writer
		fmt.Fprintln(out, "🧠 일본어 퀴즈 (뜻 → 히라가나)")

		scanner := bufio.NewScanner(c.App.Reader)
		answers := make([]string, len(start.Sample))
		for i, e := range start.Sample {
			fmt.Fprintf(out, "%d. %s: ", i+1, e.Meaning)
			if !scanner.Scan() {
				break
			}
			answers[i] = scanner.Text()
		}
		fmt.Fprintln(out)
		if err := scanner.Err(); err != nil {
			return cli.Exit(err, ExitCodeUnknownError)
		}

		report, err := command.NewGradeQuizHandler(sessions, domain.NopPublisher{}).Handle(ctx, command.GradeQuizCommand{
			SessionID: cliSession,
			Answers:   answers,
		})
		if err != nil {
			return cli.Exit(err, ExitCodeUnknownError)
		}

		printReport(c, report)
		return nil
	},
}

func printReport(c *cli.Context, report *domain.Report) {
	out := c.App.Writer
	fmt.Fprintf(out, "✅ 정답: %d개\n", len(report.Correct))
	fmt.Fprintf(out, "❌ 오답: %d개\n", len(report.Incorrect))

	if len(report.Correct) > 0 {
		fmt.Fprintln(out, "\n✅ 맞힌 문제:")
		for _, r := range report.Correct {
			fmt.Fprintln(out, "- "+r.String())
		}
	}
	if len(report.Incorrect) > 0 {
		fmt.Fprintln(out, "\n❌ 틀린 문제:")
		for _, r := range report.Incorrect {
			fmt.Fprintln(out, "- "+r.String())
		}
	}
}

var checkCommand = &cli.Command{
	Name:  "check",
	Usage: "validate the word table and report its size",
	Action: func(c *cli.Context) error {
		s := openStores(c)
		words, err := query.NewListWordsHandler(s.words).Handle(background(c))
		if err != nil {
			return loadError(err)
		}

		path := c.String("words")
		fmt.Fprintf(c.App.Writer, "%s: %d words\n", path, len(words))
		if len(words) < domain.QuizSize {
			fmt.Fprintf(c.App.Writer, "%s: 단어가 %d개 이상 있어야 퀴즈가 가능합니다.\n", path, domain.QuizSize)
		}
		return nil
	},
}
