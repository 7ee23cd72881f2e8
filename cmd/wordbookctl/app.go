package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/width"

	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/internal/word/repository"
	"github.com/tair/wordbook/pkg/logger"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

const formatErrorMessage = `⚠️ CSV 파일 형식 오류! 쉼표가 들어간 뜻은 반드시 "로 묶어야 합니다.`

func newWordbookApp() *cli.App {
	return &cli.App{
		Name:      filepath.Base(os.Args[0]),
		Usage:     "Search, collect and practice Japanese vocabulary.",
		Reader:    os.Stdin,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "words",
				Usage:   "read the word table from `FILE`",
				Aliases: []string{"w"},
				Value:   "N3.csv",
				EnvVars: []string{"WORDS_FILE"},
			},
			&cli.StringFlag{
				Name:    "favorites",
				Usage:   "keep favorites in `FILE`",
				Aliases: []string{"f"},
				Value:   "favorites.csv",
				EnvVars: []string{"FAVORITES_FILE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log `LEVEL` written to stderr",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.InitWithWriter(c.App.ErrWriter, "wordbookctl", true)
			logger.SetLevel(c.String("log-level"))
			return nil
		},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return cli.Exit(err, ExitCodeFlagParseError)
		},
		// main decides the exit status
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			searchCommand,
			favoritesCommand,
			quizCommand,
			checkCommand,
		},
	}
}

// stores opens the repositories named by the global flags
type stores struct {
	words     domain.WordRepository
	favorites domain.FavoriteRepository
}

func openStores(c *cli.Context) stores {
	return stores{
		words:     repository.NewCSVWordRepository(c.String("words")),
		favorites: repository.NewCSVFavoriteRepository(c.String("favorites")),
	}
}

// loadError turns a word table failure into an exit error. Format errors
// get the quoting hint shown by the web views.
func loadError(err error) error {
	if errors.Is(err, domain.ErrFormat) {
		return cli.Exit(fmt.Sprintf("%s\n%v", formatErrorMessage, err), ExitCodeUnknownError)
	}
	return cli.Exit(err, ExitCodeUnknownError)
}

func newEntryTable(w io.Writer, headers ...interface{}) table.Table {
	return table.New(headers...).WithWriter(w).WithWidthFunc(displayWidth)
}

// displayWidth counts wide and fullwidth runes as two columns so kana and
// hangul line up in the terminal.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func newRand(c *cli.Context) *rand.Rand {
	if !c.IsSet("seed") {
		return nil
	}
	seed := c.Uint64("seed")
	return rand.New(rand.NewPCG(seed, seed))
}

func background(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}
