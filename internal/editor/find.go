package editor

import (
	"bytes"
	"fmt"

	"hx/internal/pattern"
	"hx/internal/search"
)

// appendInput applies the line-editing actions shared by every elevated mode
// to s. It reports false when a is not a line-editing action.
func appendInput(s *string, a Action) bool {
	switch a.Kind {
	case ActChar:
		*s += string(a.Char)
	case ActPaste:
		*s += a.Text
	case ActBackspace:
		if r := []rune(*s); len(r) > 0 {
			*s = string(r[:len(r)-1])
		}
	default:
		return false
	}
	return true
}

func (c *Controller) patternBytes(text string) ([]byte, bool) {
	b, err := pattern.ToBytes(text, c.enc)
	if err != nil {
		c.status = fmt.Sprintf("Cannot encode %q in %s", text, c.enc.Name())
		return nil, false
	}
	return b, len(b) > 0
}

func (c *Controller) handleSearch(m *Searching, a Action) {
	switch a.Kind {
	case ActCancel:
		c.mode = Normal{}
		c.moveTo(m.Anchor)
		c.status = "Cancelled"
	case ActEnter:
		c.mode = Normal{}
		if m.Query == "" {
			c.status = "Search cancelled"
			return
		}
		c.lastSearch = m.Query
		c.status = "I-search: " + m.Query
	case ActSearchNext, ActStartSearch:
		if m.Query == "" {
			m.Query = c.lastSearch
		}
		c.findNext(m.Query)
	case ActSearchPrev, ActStartSearchBack:
		if m.Query == "" {
			m.Query = c.lastSearch
		}
		c.findPrev(m.Query)
	default:
		if !appendInput(&m.Query, a) {
			return
		}
		if m.Query == "" {
			c.moveTo(m.Anchor)
			return
		}
		c.incremental(m)
	}
}

// incremental moves the cursor to the match nearest the anchor in the
// search direction, wrapping once.
func (c *Controller) incremental(m *Searching) {
	pat, ok := c.patternBytes(m.Query)
	if !ok {
		return
	}
	data := c.doc.Data()

	var pos int
	var found bool
	if m.Backward {
		if pos, found = search.FindBackward(data, pat, m.Anchor+len(pat)); !found {
			pos, found = search.FindBackward(data, pat, len(data))
		}
	} else {
		if pos, found = search.FindForward(data, pat, m.Anchor); !found {
			pos, found = search.FindForward(data, pat, 0)
		}
	}
	if !found {
		c.status = "Failing I-search: " + m.Query
		return
	}
	c.moveTo(pos)
	c.status = fmt.Sprintf("%d matches", search.Count(data, pat))
}

func (c *Controller) repeatSearch(forward bool) {
	if c.lastSearch == "" {
		c.status = "No previous search"
		return
	}
	if forward {
		c.findNext(c.lastSearch)
	} else {
		c.findPrev(c.lastSearch)
	}
}

func (c *Controller) findNext(query string) {
	pat, ok := c.patternBytes(query)
	if !ok {
		return
	}
	c.reportFind(search.Next(c.doc.Data(), pat, c.cursor))
}

func (c *Controller) findPrev(query string) {
	pat, ok := c.patternBytes(query)
	if !ok {
		return
	}
	c.reportFind(search.Prev(c.doc.Data(), pat, c.cursor))
}

func (c *Controller) reportFind(pos int, wrapped, ok bool) {
	switch {
	case !ok:
		c.status = "Not found"
	case wrapped:
		c.moveTo(pos)
		c.status = fmt.Sprintf("Wrapped, found at %08X", pos)
	default:
		c.moveTo(pos)
		c.status = fmt.Sprintf("Found at %08X", pos)
	}
}

func (c *Controller) handleReplace(m *Replacing, a Action) {
	if m.Stage == ConfirmingReplace {
		c.confirmReplace(m, a)
		return
	}

	switch a.Kind {
	case ActCancel:
		c.mode = Normal{}
		c.moveTo(m.Anchor)
		c.status = "Cancelled"
		return
	case ActEnter:
	default:
		if m.Stage == EnteringSearch {
			appendInput(&m.Pattern, a)
		} else {
			appendInput(&m.Replacement, a)
		}
		return
	}

	if m.Stage == EnteringSearch {
		if m.Pattern == "" {
			c.mode = Normal{}
			c.status = "Empty search pattern"
			return
		}
		m.Stage = EnteringReplace
		return
	}

	from, ok := c.patternBytes(m.Pattern)
	if !ok {
		c.mode = Normal{}
		if c.status == "" {
			c.status = "Empty search pattern"
		}
		return
	}
	to, err := pattern.ToBytes(m.Replacement, c.enc)
	if err != nil {
		c.mode = Normal{}
		c.status = fmt.Sprintf("Cannot encode %q in %s", m.Replacement, c.enc.Name())
		return
	}
	m.from, m.to = from, to
	m.Stage = ConfirmingReplace
	c.seekReplace(m, c.cursor)
}

func (c *Controller) confirmReplace(m *Replacing, a Action) {
	if a.Kind == ActCancel {
		c.finishReplace()
		return
	}
	if a.Kind == ActDelete {
		c.seekReplace(m, c.cursor+1)
		return
	}
	if a.Kind != ActChar {
		return
	}

	switch pattern.NormalizeFullwidth(a.Char) {
	case 'y', 'Y', ' ':
		c.replaceCurrent(m)
		c.seekReplace(m, c.cursor)
	case 'n', 'N':
		c.seekReplace(m, c.cursor+1)
	case '!':
		n := c.replaceAll(m)
		c.mode = Normal{}
		c.status = fmt.Sprintf("Replaced %d occurrences", n)
	case 'q', 'Q':
		c.finishReplace()
	}
}

func (c *Controller) finishReplace() {
	c.mode = Normal{}
	c.status = "Query replace finished"
}

func (c *Controller) seekReplace(m *Replacing, from int) {
	pos, ok := search.FindForward(c.doc.Data(), m.from, from)
	if !ok {
		c.mode = Normal{}
		c.status = "No more matches"
		return
	}
	c.moveTo(pos)
	c.status = fmt.Sprintf("Replace? (y/n/!/q) at %08X", pos)
}

// replaceCurrent swaps the match at the cursor for the replacement and moves
// past it. It does nothing when the bytes at the cursor no longer match.
func (c *Controller) replaceCurrent(m *Replacing) bool {
	got, ok := c.doc.Range(c.cursor, c.cursor+len(m.from))
	if !ok || !bytes.Equal(got, m.from) {
		return false
	}
	c.deleteRange(c.cursor, c.cursor+len(m.from)-1)
	for i, v := range m.to {
		if err := c.doc.Insert(c.cursor+i, v); err != nil {
			c.fail("Replace failed", err)
			return false
		}
	}
	c.moveTo(c.cursor + len(m.to))
	return true
}

func (c *Controller) replaceAll(m *Replacing) int {
	n := 0
	for {
		pos, ok := search.FindForward(c.doc.Data(), m.from, c.cursor)
		if !ok {
			return n
		}
		c.cursor = pos
		if !c.replaceCurrent(m) {
			return n
		}
		n++
	}
}
