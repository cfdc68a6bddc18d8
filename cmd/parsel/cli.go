package main

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Target string `arg:"" help:"URL or local file to load"`

	Header   map[string]string `short:"H" help:"Request header as key=value (repeatable)"`
	XPath    bool              `help:"Start in XPath mode"`
	Browser  bool              `short:"b" help:"Render the page in a visible Chrome browser"`
	Headless bool              `help:"Render the page in a headless Chrome browser"`

	WaitCSS   string `name:"wait-css" help:"With a browser, wait until this CSS selector matches"`
	WaitXPath string `name:"wait-xpath" help:"With a browser, wait until this XPath expression matches"`

	Cache   bool   `help:"Serve plain HTTP requests from the response cache"`
	NoColor bool   `help:"Disable colored prompts"`
	ViMode  bool   `name:"vi-mode" help:"Start with vi mode on"`
	Config  string `type:"path" help:"Config file (default: $XDG_CONFIG_HOME/parsel.toml)"`

	Embed bool   `short:"e" help:"Start in an embedded shell"`
	Shell string `help:"Preferred shell for the embed command"`

	CSSExpr   string `short:"c" name:"css-expr" help:"Evaluate a CSS expression, print the result and exit"`
	XPathExpr string `short:"x" name:"xpath-expr" help:"Evaluate an XPath expression, print the result and exit"`

	Input   []string `short:"i" sep:"none" help:"Initial input line (repeatable)"`
	Verbose int      `short:"v" type:"counter" help:"Log verbosity (repeat for more)"`
}
