package prompt

import "github.com/fwojciec/parsel"

// Command names.
const (
	cmdHelp    = "help"
	cmdReset   = "reset"
	cmdEmbed   = "embed"
	cmdInfo    = "info"
	cmdCSS     = "css"
	cmdXPath   = "xpath"
	cmdOpen    = "open"
	cmdView    = "view"
	cmdVi      = "vi"
	cmdFetch   = "fetch"
	cmdClipIn  = "clipin"
	cmdClipOut = "clipout"
	cmdArticle = "article"
)

func commandFlags() []parsel.FlagSpec {
	command := func(name, help string) parsel.FlagSpec {
		return parsel.FlagSpec{Name: name, Spellings: []string{"--" + name}, Help: help, Kind: parsel.FlagCommand}
	}
	fetch := command(cmdFetch, "request new url")
	fetch.TakesValue = true
	return []parsel.FlagSpec{
		command(cmdHelp, "print help"),
		command(cmdReset, "reset session processors"),
		command(cmdEmbed, "embed shell"),
		command(cmdInfo, "show context info"),
		command(cmdCSS, "switch to css input"),
		command(cmdXPath, "switch to xpath input"),
		command(cmdOpen, "open current url in web browser"),
		command(cmdView, "open current doc in web browser"),
		command(cmdVi, "toggle input to/from vi mode"),
		fetch,
		command(cmdClipIn, "copy last input to clipboard"),
		command(cmdClipOut, "copy last output to clipboard"),
		command(cmdArticle, "print the main article as markdown"),
	}
}

// processorFlags returns the processor vocabulary. The bare --join switch
// records joinSeparator.
func processorFlags(joinSeparator string) []parsel.FlagSpec {
	processor := func(name, help string, spellings ...string) parsel.FlagSpec {
		return parsel.FlagSpec{Name: name, Spellings: spellings, Help: help, Kind: parsel.FlagProcessor}
	}
	withValue := func(spec parsel.FlagSpec) parsel.FlagSpec {
		spec.TakesValue = true
		return spec
	}

	join := processor("join", "join results", "--join", "-j")
	join.Const = &joinSeparator
	re := withValue(processor("re", "filter values by regex or if capture groups are present return them", "--re"))
	re.Multiple = true
	n := withValue(processor("n", "take n-th element", "-n"))
	n.Int = true

	return []parsel.FlagSpec{
		processor("first", "take only 1st value", "--first", "-1"),
		processor("pretty", "pretty format html", "--pretty", "-p"),
		processor("md", "convert html to markdown", "--md", "-m"),
		withValue(processor("slice", "take slice", "--slice", "-[")),
		re,
		processor("repr", "represent output (e.g. show newline chars)", "--repr", "-r"),
		processor("len", "return total length", "--len", "-l"),
		processor("sum", "sum all results", "--sum"),
		processor("strip", "strip away trailing chars", "--strip", "-s"),
		withValue(processor("strip", "strip away the given chars", "--strip-chars", "-S")),
		processor("absolute", "turn relative urls to absolute ones", "--absolute", "-a"),
		processor("collapse", "collapse single element lists", "--collapse", "-c"),
		join,
		withValue(processor("join", "join results with specified character", "--join-with", "-J")),
		n,
	}
}

// Flags returns the complete flag vocabulary of a session.
func Flags(joinSeparator string) []parsel.FlagSpec {
	return append(commandFlags(), processorFlags(joinSeparator)...)
}
