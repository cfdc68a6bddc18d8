package prompt_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/fwojciec/parsel"
	"github.com/fwojciec/parsel/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedReader returns a LineReader that yields lines then io.EOF.
func scriptedReader(lines []string, prompts *[]string, histories *[]parsel.History) *mock.LineReader {
	return &mock.LineReader{
		ReadLineFn: func(prompt string) (string, error) {
			*prompts = append(*prompts, prompt)
			if len(lines) == 0 {
				return "", io.EOF
			}
			line := lines[0]
			lines = lines[1:]
			return line, nil
		},
		SetCompletionsFn: func([]string) {},
		SetHistoryFn:     func(h parsel.History) { *histories = append(*histories, h) },
		SetViModeFn:      func(bool) {},
	}
}

func recordingHistory(lines *[]string) *mock.History {
	return &mock.History{
		AppendFn: func(line string) error { *lines = append(*lines, line); return nil },
		LinesFn:  func() ([]string, error) { return *lines, nil },
	}
}

func TestSession_Run(t *testing.T) {
	t.Parallel()

	t.Run("reads until exit and routes history by mode", func(t *testing.T) {
		t.Parallel()

		// Given
		f := newFixture(t, "<h1>text</h1>")
		var cssLines, xpathLines []string
		css, xpath := recordingHistory(&cssLines), recordingHistory(&xpathLines)
		f.session.HistoryCSS, f.session.HistoryXPath = css, xpath

		var prompts []string
		var histories []parsel.History
		f.session.Reader = scriptedReader([]string{"h1::text", "--xpath", "//h1/text()", "exit", "h1"}, &prompts, &histories)

		// When
		err := f.session.Run(context.Background(), false)

		// Then
		require.NoError(t, err)
		assert.Equal(t, "[\"text\"]\n[\"text\"]\n", f.out.String())
		assert.Equal(t, []string{"h1::text", "--xpath"}, cssLines)
		assert.Equal(t, []string{"//h1/text()"}, xpathLines)
		assert.Equal(t, []string{"CSS> ", "CSS> ", "XPATH> ", "XPATH> "}, prompts)
		require.Len(t, histories, 4)
		assert.Same(t, css, histories[0])
		assert.Same(t, xpath, histories[2])
	})

	t.Run("stops at end of input", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "<h1>text</h1>")
		var prompts []string
		var histories []parsel.History
		f.session.Reader = scriptedReader(nil, &prompts, &histories)

		err := f.session.Run(context.Background(), false)

		require.NoError(t, err)
		assert.Len(t, prompts, 1)
	})

	t.Run("returns reader failures", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "<h1>text</h1>")
		reader := scriptedReader(nil, new([]string), new([]parsel.History))
		reader.ReadLineFn = func(string) (string, error) { return "", errors.New("tty closed") }
		f.session.Reader = reader

		err := f.session.Run(context.Background(), false)

		assert.ErrorContains(t, err, "tty closed")
	})

	t.Run("embeds before the first prompt", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "<h1>text</h1>")
		var order []string
		f.session.Shells = []parsel.Shell{&mock.Shell{
			NameFn:      func() string { return "sh" },
			AvailableFn: func() bool { return true },
			EmbedFn: func(context.Context, parsel.Namespace, string) error {
				order = append(order, "embed")
				return nil
			},
		}}
		reader := scriptedReader(nil, new([]string), new([]parsel.History))
		reader.ReadLineFn = func(string) (string, error) {
			order = append(order, "prompt")
			return "", io.EOF
		}
		f.session.Reader = reader

		err := f.session.Run(context.Background(), true)

		require.NoError(t, err)
		assert.Equal(t, []string{"embed", "prompt"}, order)
	})
}

func TestSession_Handle(t *testing.T) {
	t.Parallel()

	t.Run("converts escaped newlines before parsing", func(t *testing.T) {
		t.Parallel()

		// Given
		f := newFixture(t, "<h1>text</h1><h1>text2</h1>")
		var lines []string
		f.session.HistoryCSS = recordingHistory(&lines)

		// When
		done := f.session.Handle(context.Background(), `//h1/text() --xpath --join-with \n`)

		// Then
		assert.False(t, done)
		assert.Equal(t, "text\ntext2\n", f.out.String())
		assert.Equal(t, []string{`//h1/text() --xpath --join-with \n`}, lines)
	})

	t.Run("exits on exit", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "<h1>text</h1>")

		assert.True(t, f.session.Handle(context.Background(), "  EXIT "))
	})

	t.Run("prints help for a bare help word", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "<h1>text</h1>")

		done := f.session.Handle(context.Background(), "help")

		assert.False(t, done)
		assert.Contains(t, f.err.String(), "Commands:")
		assert.Empty(t, f.out.String())
	})

	t.Run("skips empty lines", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "<h1>text</h1>")
		f.session.HistoryCSS = &mock.History{}

		done := f.session.Handle(context.Background(), "")

		assert.False(t, done)
		assert.Empty(t, f.out.String())
	})

	t.Run("echoes errors and records no output", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "<h1>text</h1>")

		f.session.Handle(context.Background(), "h1::text -n 5")

		assert.Equal(t, "processor \"n(5)\" failed: list index 5 out of range\n", f.err.String())
		assert.Empty(t, f.out.String())
		assert.Empty(t, f.session.Outputs())
	})
}

func TestSession_Print(t *testing.T) {
	t.Parallel()

	t.Run("asks before printing big output", func(t *testing.T) {
		t.Parallel()

		// Given
		cfg := parsel.DefaultConfig(t.TempDir())
		cfg.WarnLimit = 3
		f := newFixtureWithConfig(t, "<h1>text</h1>", cfg)
		var question string
		answer := false
		f.session.Confirmer = &mock.Confirmer{ConfirmFn: func(q string) (bool, error) {
			question = q
			return answer, nil
		}}

		// When declined
		f.session.Print(strs("text"))

		// Then
		assert.Equal(t, "very big output 4, print?", question)
		assert.Empty(t, f.out.String())
		assert.Empty(t, f.session.Outputs())

		// When accepted
		answer = true
		f.session.Print(strs("text"))

		assert.Equal(t, "[\"text\"]\n", f.out.String())
		assert.Len(t, f.session.Outputs(), 1)
	})

	t.Run("prints empty results without recording them", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, "<h1>text</h1>")

		f.session.Print(strs())

		assert.Equal(t, "[]\n", f.out.String())
		assert.Empty(t, f.session.Outputs())
	})
}

func TestSession_Compile(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "<h1>text</h1>")
	f.session.Prime(context.Background(), []string{"--first"})

	err := f.session.Compile(parsel.ModeXPath, "//h1/text()")

	require.NoError(t, err)
	assert.Equal(t, "text\n", f.out.String())
	assert.Equal(t, parsel.ModeXPath, f.session.Mode())
}

func TestSession_Compile_SkipsWarnLimitAndOutputs(t *testing.T) {
	t.Parallel()

	// Given a tiny warn limit and a confirmer that must not be asked
	cfg := parsel.DefaultConfig(t.TempDir())
	cfg.WarnLimit = 1
	f := newFixtureWithConfig(t, "<h1>text</h1>", cfg)
	f.session.Confirmer = &mock.Confirmer{ConfirmFn: func(string) (bool, error) {
		t.Fatal("unexpected confirmation")
		return false, nil
	}}

	// When a large result is compiled
	err := f.session.Compile(parsel.ModeCSS, "h1::text")

	// Then it prints without recording output
	require.NoError(t, err)
	assert.Equal(t, "text\n", f.out.String())
	assert.Empty(t, f.session.Outputs())
}

func TestSession_Prime(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "<h1>text</h1>")

	f.session.Prime(context.Background(), []string{"--strip --len", "--nope"})

	assert.Equal(t, "[strip, len]", f.session.Chain().String())
	assert.Contains(t, f.err.String(), "no such option: --nope")
	assert.Empty(t, f.out.String())
}
