package conversation

// Option is a selectable choice attached to a reply: a human label and an
// opaque token the presentation layer echoes back as a button press.
type Option struct {
	Label string
	Token string
}

// Reply is the renderable outcome of a dispatch: plain text plus optional
// selectable options. The engine never emits markup.
type Reply struct {
	Text    string
	Options []Option
}

func text(s string) *Reply { return &Reply{Text: s} }
