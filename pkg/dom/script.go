package dom

import (
	"golang.org/x/net/html"

	"github.com/vango-dev/domkit/pkg/events"
)

// ScriptOptions configures AddScript.
type ScriptOptions struct {
	// Load runs when the script loads. By default the script element
	// removes itself.
	Load events.Listener

	// Error runs when the script fails to load.
	Error events.Listener
}

// AddScript appends a <script src> element to the head and returns it.
func (d *Document) AddScript(src string, opts ScriptOptions) *html.Node {
	script := d.Create("script", AttrSet{Plain("src", src)}, nil)

	load := opts.Load
	if load == nil {
		load = func(*events.Event) { d.Remove(script) }
	}
	d.Listen(script, "load", load)
	if opts.Error != nil {
		d.Listen(script, "error", opts.Error)
	}

	parent := d.Head()
	if parent == nil {
		parent = d.DocumentElement()
	}
	if parent != nil {
		d.Append(parent, script)
	} else {
		d.root.AppendChild(script)
	}
	return script
}
