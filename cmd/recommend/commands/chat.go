package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"travelrec/internal/service"
)

var exitWords = map[string]bool{"exit": true, "quit": true, "bye": true}

// errInitFailed is returned when the assistant cannot start
var errInitFailed = errors.New("error initializing the recommendation system")

func newChatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive recommendation assistant",
		Long: `Start the interactive recommendation assistant. Every line is answered on
its own; nothing carries over between queries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}
}

func runChat(cmd *cobra.Command, opts *options) error {
	out := cmd.OutOrStdout()

	cfg, err := opts.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// keep info logs out of the conversation unless asked for
	if opts.logLevel == "" {
		cfg.Logging.Level = "warn"
	}
	cfg.Logging.Format = "console"

	engine, logger, err := newEngine(cmd.Context(), cmd, cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", errInitFailed, err)
	}
	defer engine.Close()

	if engine.Service == nil {
		errorColor.Fprintln(out, "Error initializing the recommendation system. Please check your data files.")
		return errInitFailed
	}

	s := &chatSession{svc: engine.Service, out: out, logger: logger}
	printWelcome(out)
	return s.loop(cmd.InOrStdin())
}

type chatSession struct {
	svc    *service.RecommendationService
	out    io.Writer
	logger zerolog.Logger
}

func (s *chatSession) loop(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintln(s.out)
		promptColor.Fprint(s.out, "➤ ")

		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if exitWords[strings.ToLower(line)] {
			fmt.Fprintln(s.out)
			titleColor.Fprintln(s.out, "Thank you for using the Travel Recommendation Assistant. Goodbye!")
			return nil
		}
		if line == "" {
			continue
		}

		s.answer(line)
	}
}

func (s *chatSession) answer(query string) {
	rec, err := s.svc.Recommend(query)
	switch {
	case errors.Is(err, service.ErrCategoryUndetermined):
		warningColor.Fprintln(s.out, "I'm not sure what you're looking for. Could you please try again with more details?")
		return
	case err != nil:
		s.logger.Error().Err(err).Str("query", query).Msg("Error processing request")
		errorColor.Fprintln(s.out, "Sorry, I encountered an error processing your request. Please try again.")
		return
	}

	if len(rec.RankedItems) == 0 {
		fmt.Fprintln(s.out)
		warningColor.Fprintln(s.out, "I couldn't find any recommendations matching your criteria. Could you try with different preferences?")
	} else {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "Here are some recommendations based on your request:")
		for i, item := range rec.RankedItems {
			printItem(s.out, i+1, service.FormatItem(item))
		}
	}

	if len(rec.Alternatives) > 0 {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "You might also be interested in:")
		for _, alt := range rec.Alternatives {
			fmt.Fprintf(s.out, "- %s\n", alt)
		}
	}
}
