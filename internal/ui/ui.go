// Released under an MIT license. See LICENSE.

// Package ui provides an interactive command-line interface for kaguya.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"github.com/kaguya-lang/kaguya/internal/common/interface/cell"
	"github.com/kaguya-lang/kaguya/internal/common/struct/lazy"
	"github.com/kaguya-lang/kaguya/internal/common/type/pair"
	"github.com/kaguya-lang/kaguya/internal/engine/task"
	"github.com/kaguya-lang/kaguya/internal/reader"
	"github.com/kaguya-lang/kaguya/internal/system/history"
	"github.com/kaguya-lang/kaguya/internal/system/job"
)

// Name identifies the text typed in an interactive session.
const Name = "<stdin>"

const prompt = ">> "

// Evaluator is the interface for things that want to run parsed terms.
type Evaluator interface {
	Append(name, text string)
	Execute(ctx context.Context, b *lazy.T) (cell.I, error)
	Names() []string
	Report(err error) string
	Reset(name string)
}

// Run reads terms from the terminal and passes them to e until the user
// ends the session.
func Run(e Evaluator, log *logrus.Logger) error {
	cooked, err := liner.TerminalMode()
	if err != nil {
		return err
	}

	cli := liner.NewLiner()
	defer cli.Close()

	uncooked, err := liner.TerminalMode()
	if err != nil {
		return err
	}

	err = history.Load(cli.ReadHistory)
	if err != nil {
		log.WithError(err).Warn("loading history")
	}

	cli.SetCtrlCAborts(true)
	cli.SetWordCompleter(func(line string, pos int) (string, []string, string) {
		return complete(e.Names(), line, pos)
	})

	s := &session{e: e, out: os.Stdout}

	for {
		merr := uncooked.ApplyMode()
		if merr != nil {
			return merr
		}

		line, err := cli.Prompt(prompt)

		merr = cooked.ApplyMode()
		if merr != nil {
			return merr
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			// Abandon whatever was partially typed.
			s.restart()

			continue
		} else if err != nil {
			_, _ = io.WriteString(os.Stdout, "\n")

			break
		}

		cli.AppendHistory(line)

		s.line(line)
	}

	s.close()

	return history.Save(cli.WriteHistory)
}

// complete offers the names that start with the word before pos.
func complete(names []string, line string, pos int) (head string, cs []string, tail string) {
	head, tail = line[:pos], line[pos:]

	start := strings.LastIndexAny(head, " \t()'`,") + 1
	word := head[start:]

	if word == "" {
		return head, nil, tail
	}

	for _, n := range names {
		if strings.HasPrefix(n, word) {
			cs = append(cs, n)
		}
	}

	return head[:start], cs, tail
}

type session struct {
	e   Evaluator
	out io.Writer
	r   *reader.T
}

func (s *session) close() {
	if s.r != nil {
		s.r.Close()
		s.r = nil
	}
}

func (s *session) line(text string) {
	if s.r == nil {
		s.r = reader.New(Name)
	}

	text += "\n"

	s.e.Append(Name, text)

	terms, err := s.r.Scan(text)
	if err != nil {
		s.report(err)
		s.restart()

		return
	}

	for _, t := range terms {
		s.run(text, t)
	}
}

func (s *session) report(err error) {
	_, _ = io.WriteString(s.out, s.e.Report(err))
}

func (s *session) restart() {
	s.close()
	s.e.Reset(Name)
}

func (s *session) run(text string, t *lazy.T) {
	j, ctx := job.New(context.Background())
	defer j.Done()

	j.Append(text)

	v, err := s.e.Execute(ctx, t)
	if err != nil {
		if j.Interrupted() {
			_, _ = io.WriteString(s.out, "Interrupted.\n")

			return
		}

		s.report(err)

		return
	}

	if v == nil || v == pair.Null {
		return
	}

	text, err = task.Literal(ctx, v)
	if err != nil {
		s.report(err)

		return
	}

	_, _ = fmt.Fprintln(s.out, text)
}
