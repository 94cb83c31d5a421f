package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/kanaz/internal/audio"
	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a quiz in line mode, without the full-screen UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, true)
		if err != nil {
			return err
		}
		defer d.close()
		ctx := cmd.Context()

		category, _ := cmd.Flags().GetString("category")
		id, err := kana.ParseCategoryID(category)
		if err != nil {
			return err
		}

		dir := d.direction(ctx)
		if s, _ := cmd.Flags().GetString("direction"); s != "" {
			if dir, err = quiz.ParseDirection(s); err != nil {
				return err
			}
		}
		count, _ := cmd.Flags().GetInt("count")
		if count <= 0 {
			count = d.cfg.Quiz.Count
		}

		var player audio.Player = audio.Nop{}
		if withAudio, _ := cmd.Flags().GetBool("audio"); withAudio {
			player = d.player()
		}
		defer player.Release(context.WithoutCancel(ctx))

		s, err := d.engine(dir, count).StartSession(id)
		if err != nil {
			return err
		}
		err = runLineQuiz(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), s, player)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return err
		}
		if s.Phase() != quiz.PhaseFinished {
			return nil
		}
		return quiz.Save(context.WithoutCancel(ctx), d.store.QuizRepo(), s)
	},
}

func init() {
	quizCmd.Flags().StringP("category", "c", string(kana.Hiragana), "Quiz category: hiragana, katakana, combined, voiced, contracted or vocabulary")
	quizCmd.Flags().StringP("direction", "d", "", "Question direction: glyph, reading or mixed")
	quizCmd.Flags().IntP("count", "n", 0, "Number of questions (default from config)")
	quizCmd.Flags().Bool("audio", false, "Play each kana after answering")
}

// runLineQuiz asks every question of s on out, reading answers from in.
// An answer is an option number or the option itself. "q" or EOF ends the
// quiz early. Cancelling ctx abandons the quiz and returns ctx.Err(), even
// while waiting for input.
func runLineQuiz(ctx context.Context, in io.Reader, out io.Writer, s *quiz.Session, player audio.Player) error {
	for _, w := range s.Warnings() {
		fmt.Fprintln(out, theme.Hint.Render("warning: "+w.String()))
	}
	if s.Total() == 0 {
		fmt.Fprintln(out, "Nothing to ask in this category.")
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	glyph := lipgloss.NewStyle().Bold(true).Foreground(theme.ArcadeYellow)
	lines := readLines(ctx, in)

	for s.Phase() != quiz.PhaseFinished {
		q, _ := s.Current()
		opts := q.Options()

		fmt.Fprintf(out, "\n[%d/%d]  %s\n", s.Index()+1, s.Total(), glyph.Render(q.Prompt()))
		if q.Gloss != "" {
			fmt.Fprintln(out, theme.Hint.Render("("+q.Gloss+")"))
		}
		for i, o := range opts {
			fmt.Fprintf(out, "  %d) %s\n", i+1, o)
		}

		answer, err := prompt(ctx, lines, out, opts)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(out, "\nQuiz abandoned.")
			return nil
		case ctx.Err() != nil:
			fmt.Fprintln(out, "\nQuiz abandoned.")
			return ctx.Err()
		case err != nil:
			return err
		}

		fb, err := s.SubmitAnswer(answer)
		if err != nil {
			return err
		}
		_ = player.Play(ctx, q.CorrectReading)

		if fb.IsCorrect {
			fmt.Fprintln(out, theme.Correct.Render("Correct!"))
		} else {
			fmt.Fprintln(out, theme.Incorrect.Render(fmt.Sprintf("Not quite: %s is %s", q.Glyph, fb.CorrectReading)))
		}
		if _, err := s.Advance(); err != nil {
			return err
		}
	}

	res, err := s.Result()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nScore: %d/%d (%d%%)  %s\n", res.Score, res.Total, res.Percentage, res.Tier.Message())
	return nil
}

type inputLine struct {
	text string
	err  error
}

// readLines scans in on its own goroutine so a blocked read never holds up
// cancellation. The channel is closed at EOF.
func readLines(ctx context.Context, in io.Reader) <-chan inputLine {
	lines := make(chan inputLine)
	send := func(l inputLine) bool {
		select {
		case lines <- l:
			return true
		case <-ctx.Done():
			return false
		}
	}
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if !send(inputLine{text: scanner.Text()}) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			send(inputLine{err: err})
		}
	}()
	return lines
}

// prompt reads one answer, re-asking on blank lines and bad numbers.
func prompt(ctx context.Context, lines <-chan inputLine, out io.Writer, opts []string) (string, error) {
	for {
		fmt.Fprint(out, "> ")
		var l inputLine
		var ok bool
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case l, ok = <-lines:
		}
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		line := strings.TrimSpace(l.text)
		switch {
		case line == "":
			continue
		case line == "q":
			return "", io.EOF
		}
		if n, err := strconv.Atoi(line); err == nil {
			if n < 1 || n > len(opts) {
				fmt.Fprintf(out, "Pick 1-%d.\n", len(opts))
				continue
			}
			return opts[n-1], nil
		}
		return line, nil
	}
}
