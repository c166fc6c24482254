package buffer

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	ErrOutOfBounds = errors.New("offset out of bounds")
	ErrReadOnly    = errors.New("buffer is read-only")
	ErrNoPath      = errors.New("no file path set")
)

type OpType int

const (
	OpSet OpType = iota
	OpInsert
	OpDelete
)

// Operation records one single-byte change. Old is only meaningful for
// OpSet; for OpInsert and OpDelete the affected byte is New.
type Operation struct {
	Type   OpType
	Offset int
	Old    byte
	New    byte
}

type Document struct {
	path         string
	data         []byte
	originalHash string
	modified     bool
	readonly     bool
	undoStack    []Operation
	redoStack    []Operation
}

func New() *Document {
	return &Document{data: make([]byte, 0)}
}

func FromBytes(data []byte) *Document {
	return &Document{
		data:         data,
		originalHash: hashOf(data),
	}
}

func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &Document{
		path:         path,
		data:         data,
		originalHash: hashOf(data),
	}, nil
}

func hashOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (d *Document) Path() string {
	return d.path
}

func (d *Document) Filename() string {
	if d.path == "" {
		return ""
	}
	return filepath.Base(d.path)
}

func (d *Document) IsModified() bool {
	return d.modified
}

func (d *Document) ReadOnly() bool {
	return d.readonly
}

func (d *Document) SetReadOnly(ro bool) {
	d.readonly = ro
}

func (d *Document) Len() int {
	return len(d.data)
}

// Data exposes the live byte slice. Callers must not retain it across
// mutations.
func (d *Document) Data() []byte {
	return d.data
}

func (d *Document) Get(pos int) (byte, bool) {
	if pos < 0 || pos >= len(d.data) {
		return 0, false
	}
	return d.data[pos], true
}

// Range returns data[start:end] or false when start > end or end > Len.
func (d *Document) Range(start, end int) ([]byte, bool) {
	if start < 0 || start > end || end > len(d.data) {
		return nil, false
	}
	return d.data[start:end], true
}

func (d *Document) outOfBounds(pos int) error {
	return fmt.Errorf("%w: %d (length %d)", ErrOutOfBounds, pos, len(d.data))
}

func (d *Document) record(op Operation) {
	d.undoStack = append(d.undoStack, op)
	d.redoStack = nil
	d.modified = true
}

func (d *Document) Set(pos int, value byte) error {
	if d.readonly {
		return ErrReadOnly
	}
	if pos < 0 || pos >= len(d.data) {
		return d.outOfBounds(pos)
	}
	old := d.data[pos]
	if old == value {
		return nil
	}
	d.data[pos] = value
	d.record(Operation{Type: OpSet, Offset: pos, Old: old, New: value})
	return nil
}

func (d *Document) Insert(pos int, value byte) error {
	if d.readonly {
		return ErrReadOnly
	}
	if pos < 0 || pos > len(d.data) {
		return d.outOfBounds(pos)
	}
	d.insertAt(pos, value)
	d.record(Operation{Type: OpInsert, Offset: pos, New: value})
	return nil
}

func (d *Document) Delete(pos int) (byte, error) {
	if d.readonly {
		return 0, ErrReadOnly
	}
	if pos < 0 || pos >= len(d.data) {
		return 0, d.outOfBounds(pos)
	}
	value := d.removeAt(pos)
	d.record(Operation{Type: OpDelete, Offset: pos, New: value})
	return value, nil
}

func (d *Document) insertAt(pos int, value byte) {
	d.data = append(d.data, 0)
	copy(d.data[pos+1:], d.data[pos:])
	d.data[pos] = value
}

func (d *Document) removeAt(pos int) byte {
	value := d.data[pos]
	d.data = append(d.data[:pos], d.data[pos+1:]...)
	return value
}

func (d *Document) clamp(pos int) int {
	if pos > len(d.data)-1 {
		pos = len(d.data) - 1
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

// Undo reverts the most recent operation and returns the offset it touched,
// clamped into [0, Len-1].
func (d *Document) Undo() (int, bool) {
	if len(d.undoStack) == 0 {
		return 0, false
	}

	op := d.undoStack[len(d.undoStack)-1]
	d.undoStack = d.undoStack[:len(d.undoStack)-1]

	pos := op.Offset
	switch op.Type {
	case OpSet:
		d.data[op.Offset] = op.Old
	case OpInsert:
		d.removeAt(op.Offset)
		pos = op.Offset - 1
	case OpDelete:
		d.insertAt(op.Offset, op.New)
	}

	d.redoStack = append(d.redoStack, op)
	d.modified = len(d.undoStack) > 0
	return d.clamp(pos), true
}

func (d *Document) Redo() (int, bool) {
	if len(d.redoStack) == 0 {
		return 0, false
	}

	op := d.redoStack[len(d.redoStack)-1]
	d.redoStack = d.redoStack[:len(d.redoStack)-1]

	switch op.Type {
	case OpSet:
		d.data[op.Offset] = op.New
	case OpInsert:
		d.insertAt(op.Offset, op.New)
	case OpDelete:
		d.removeAt(op.Offset)
	}

	d.undoStack = append(d.undoStack, op)
	d.modified = true
	return d.clamp(op.Offset), true
}

func (d *Document) CanUndo() bool {
	return len(d.undoStack) > 0
}

func (d *Document) CanRedo() bool {
	return len(d.redoStack) > 0
}

func (d *Document) UndoDepth() int {
	return len(d.undoStack)
}

func (d *Document) RedoDepth() int {
	return len(d.redoStack)
}

func (d *Document) HasChangedOnDisk() (bool, error) {
	if d.path == "" {
		return false, nil
	}

	data, err := os.ReadFile(d.path)
	if err != nil {
		return false, err
	}

	return hashOf(data) != d.originalHash, nil
}

func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoPath
	}

	if err := os.WriteFile(d.path, d.data, 0644); err != nil {
		return err
	}

	d.originalHash = hashOf(d.data)
	d.modified = false
	return nil
}

// SaveAs writes to path and adopts it. A failed write keeps the old path.
func (d *Document) SaveAs(path string) error {
	old := d.path
	d.path = path
	if err := d.Save(); err != nil {
		d.path = old
		return err
	}
	return nil
}
