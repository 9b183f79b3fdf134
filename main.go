// Released under an MIT license. See LICENSE.

package main

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/kaguya-lang/kaguya/internal/engine"
	"github.com/kaguya-lang/kaguya/internal/system/job"
	"github.com/kaguya-lang/kaguya/internal/system/options"
	"github.com/kaguya-lang/kaguya/internal/ui"
)

func main() {
	options.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	if options.Debug() {
		log.SetLevel(logrus.DebugLevel)
	}

	e, err := engine.New(engine.Options{
		Args:    options.Args(),
		Log:     log,
		Prelude: options.Prelude(),
	})
	if err != nil {
		log.WithError(err).Fatal("starting engine")
	}

	job.Monitor()

	if options.Interactive() {
		err = ui.Run(e, log)
		if err != nil {
			log.WithError(err).Fatal("interactive session")
		}

		return
	}

	err = run(e, log)
	if err != nil {
		_, _ = io.WriteString(os.Stderr, e.Report(err))

		os.Exit(1)
	}
}

func run(e *engine.T, log *logrus.Logger) error {
	j, ctx := job.New(context.Background())
	defer j.Done()

	if c := options.Command(); c != "" {
		j.Append(c)

		return e.Load(ctx, "-c", c)
	}

	if s := options.Script(); s != "" {
		j.Append(s)

		log.WithFields(logrus.Fields{
			"script": s,
			"args":   options.Args(),
		}).Debug("run")

		return e.Import(ctx, s)
	}

	text, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}

	return e.Load(ctx, ui.Name, string(text))
}
