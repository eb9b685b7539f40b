package blueroute

// Cursor is the shared position into the path segments while a scheme table
// is evaluated. Every token moves it one scheme position; args tokens move
// it past however many segments they take instead. It never moves back.
type Cursor struct {
	segments []string
	pos      int
	consumed bool
}

// NewCursor returns a cursor at the first segment.
func NewCursor(segments []string) *Cursor {
	return &Cursor{segments: segments}
}

// Current returns the segment under the cursor.
func (c *Cursor) Current() (string, bool) {
	if c.pos < len(c.segments) {
		return c.segments[c.pos], true
	}
	return "", false
}

// Pos returns the index into the segments.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns how many segments are left from the cursor on.
func (c *Cursor) Remaining() int {
	if c.pos >= len(c.segments) {
		return 0
	}
	return len(c.segments) - c.pos
}

// ConsumeSegments takes up to n segments from the cursor on.
func (c *Cursor) ConsumeSegments(n int) []string {
	if n > c.Remaining() {
		n = c.Remaining()
	}
	if n <= 0 {
		return nil
	}

	taken := c.segments[c.pos : c.pos+n]
	c.pos += n
	c.consumed = true
	return taken
}

// ConsumeAll takes every remaining segment.
func (c *Cursor) ConsumeAll() []string {
	return c.ConsumeSegments(c.Remaining())
}

// AdvanceScheme finishes one token. The cursor steps one segment unless the
// token already moved it by consuming.
func (c *Cursor) AdvanceScheme() {
	if !c.consumed {
		c.pos++
	}
	c.consumed = false
}
