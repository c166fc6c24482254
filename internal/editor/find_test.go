package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementalSearch(t *testing.T) {
	c, _ := newController([]byte("one two one"))
	run(c, ActStartSearch)

	typeText(c, "one")
	assert.Equal(t, 0, c.Cursor())
	assert.Equal(t, "2 matches", c.Status())
	assert.Equal(t, "I-search: one_", c.StatusLine())

	run(c, ActEnter)
	assert.IsType(t, Normal{}, c.Mode())
	assert.Equal(t, "one", c.LastSearch())

	run(c, ActSearchNext)
	assert.Equal(t, 8, c.Cursor())
	assert.Equal(t, "Found at 00000008", c.Status())

	run(c, ActSearchNext)
	assert.Equal(t, 0, c.Cursor())
	assert.Equal(t, "Wrapped, found at 00000000", c.Status())

	run(c, ActSearchPrev)
	assert.Equal(t, 8, c.Cursor())
	assert.Equal(t, "Wrapped, found at 00000008", c.Status())
}

func TestIncrementalSearchBackward(t *testing.T) {
	c, _ := newController([]byte("one two one"))
	run(c, ActGotoEnd, ActStartSearchBack)

	typeText(c, "one")
	assert.Equal(t, 8, c.Cursor())
	assert.Equal(t, "I-search backward: one_", c.StatusLine())

	run(c, ActSearchPrev)
	assert.Equal(t, 0, c.Cursor())
}

func TestIncrementalSearchHexQuery(t *testing.T) {
	c, _ := newController([]byte{0x00, 0x44, 0xDE, 0xAD})
	run(c, ActStartSearch)

	typeText(c, "D")
	assert.Equal(t, 1, c.Cursor(), "odd-length input is literal text")

	typeText(c, "E AD")
	assert.Equal(t, 2, c.Cursor())
}

func TestIncrementalSearchFailing(t *testing.T) {
	c, _ := newController([]byte("abc"))
	run(c, ActCursorRight, ActStartSearch)

	typeText(c, "zz")
	assert.Equal(t, "Failing I-search: zz", c.Status())
	assert.Equal(t, 1, c.Cursor())
}

func TestSearchCancelRestoresCursor(t *testing.T) {
	c, _ := newController([]byte("one two one"))
	run(c, ActCursorRight, ActCursorRight, ActStartSearch)

	typeText(c, "two")
	assert.Equal(t, 4, c.Cursor())

	run(c, ActCancel)
	assert.Equal(t, 2, c.Cursor())
	assert.Equal(t, "Cancelled", c.Status())
	assert.IsType(t, Normal{}, c.Mode())
}

func TestSearchBackspaceToEmptyReturnsToAnchor(t *testing.T) {
	c, _ := newController([]byte("xy xy"))
	run(c, ActCursorRight, ActStartSearch)

	typeText(c, "x")
	assert.Equal(t, 3, c.Cursor())

	run(c, ActBackspace)
	assert.Equal(t, 1, c.Cursor())

	run(c, ActEnter)
	assert.Equal(t, "Search cancelled", c.Status())
	assert.Empty(t, c.LastSearch())
}

func TestSearchNextReusesLastQuery(t *testing.T) {
	c, _ := newController([]byte("ab ab ab"))
	run(c, ActSearchNext)
	assert.Equal(t, "No previous search", c.Status())

	run(c, ActStartSearch)
	c.Execute(Paste(`"ab"`))
	run(c, ActEnter)
	require.Equal(t, `"ab"`, c.LastSearch())

	run(c, ActStartSearch, ActSearchNext)
	assert.Equal(t, 3, c.Cursor())
	run(c, ActSearchNext)
	assert.Equal(t, 6, c.Cursor())
}

func TestSearchIgnoresOtherActions(t *testing.T) {
	c, _ := newController([]byte("abc"))
	run(c, ActStartSearch, ActStartReplace, ActCopy, ActUndo)
	assert.IsType(t, &Searching{}, c.Mode())
}

func TestReplaceAll(t *testing.T) {
	c, _ := newController([]byte("aaa"))
	run(c, ActStartReplace)
	typeText(c, "a")
	run(c, ActEnter)
	assert.Equal(t, "Query replace a with: _", c.StatusLine())

	typeText(c, `"bb"`)
	run(c, ActEnter)
	assert.Equal(t, "Replace? (y/n/!/q) at 00000000", c.Status())

	c.Execute(Char('!'))
	assert.Equal(t, []byte("bbbbbb"), c.Document().Data())
	assert.Equal(t, "Replaced 3 occurrences", c.Status())
	assert.IsType(t, Normal{}, c.Mode())
}

func TestReplaceAllWithHexReplacement(t *testing.T) {
	c, _ := newController([]byte("aaa"))
	run(c, ActStartReplace)
	typeText(c, "a")
	run(c, ActEnter)
	typeText(c, "bb")
	run(c, ActEnter)
	c.Execute(Char('!'))

	assert.Equal(t, []byte{0xBB, 0xBB, 0xBB}, c.Document().Data())
}

func TestQueryReplaceStepwise(t *testing.T) {
	c, _ := newController([]byte("x1x2x3"))
	run(c, ActStartReplace)
	typeText(c, "x")
	run(c, ActEnter)
	typeText(c, "z")
	run(c, ActEnter)
	require.Equal(t, 0, c.Cursor())

	c.Execute(Char('y'))
	assert.Equal(t, []byte("z1x2x3"), c.Document().Data())
	assert.Equal(t, 2, c.Cursor())

	c.Execute(Char('n'))
	assert.Equal(t, 4, c.Cursor())

	c.Execute(Char('y'))
	assert.Equal(t, []byte("z1x2z3"), c.Document().Data())
	assert.Equal(t, "No more matches", c.Status())
	assert.IsType(t, Normal{}, c.Mode())
}

func TestQueryReplaceQuit(t *testing.T) {
	c, _ := newController([]byte("x1x2"))
	run(c, ActStartReplace)
	typeText(c, "x")
	run(c, ActEnter)
	typeText(c, "z")
	run(c, ActEnter)

	c.Execute(Char('q'))
	assert.Equal(t, "Query replace finished", c.Status())
	assert.Equal(t, []byte("x1x2"), c.Document().Data())
}

func TestReplaceEmptyPattern(t *testing.T) {
	c, _ := newController([]byte("abc"))
	run(c, ActStartReplace, ActEnter)
	assert.Equal(t, "Empty search pattern", c.Status())
	assert.IsType(t, Normal{}, c.Mode())
}

func TestReplaceCancelRestoresCursor(t *testing.T) {
	c, _ := newController([]byte("abc"))
	run(c, ActCursorRight, ActStartReplace)
	typeText(c, "c")
	run(c, ActCancel)

	assert.Equal(t, 1, c.Cursor())
	assert.Equal(t, "Cancelled", c.Status())
}

func TestReplaceNoMatch(t *testing.T) {
	c, _ := newController([]byte("abc"))
	run(c, ActStartReplace)
	typeText(c, "zz")
	run(c, ActEnter)
	typeText(c, "y")
	run(c, ActEnter)

	assert.Equal(t, "No more matches", c.Status())
	assert.IsType(t, Normal{}, c.Mode())
}
