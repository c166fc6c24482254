package buffer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pgregory.net/rapid"
)

func TestNew(t *testing.T) {
	d := New()
	if d.Len() != 0 {
		t.Errorf("expected size 0, got %d", d.Len())
	}
	if d.IsModified() {
		t.Error("expected new document to be unmodified")
	}
}

func TestInsert(t *testing.T) {
	d := New()
	for i, v := range []byte{0x41, 0x42, 0x43} {
		if err := d.Insert(i, v); err != nil {
			t.Fatal(err)
		}
	}

	if d.Len() != 3 {
		t.Errorf("expected size 3, got %d", d.Len())
	}
	if !bytes.Equal(d.Data(), []byte("ABC")) {
		t.Errorf("unexpected data: % X", d.Data())
	}

	if err := d.Insert(4, 0x00); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds past the end, got %v", err)
	}
	if err := d.Insert(3, 0x44); err != nil {
		t.Errorf("append at Len should succeed, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	d := FromBytes([]byte{0x41, 0x42, 0x43, 0x44})

	v, err := d.Delete(1)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x42 {
		t.Errorf("expected removed byte 0x42, got %02X", v)
	}
	if !bytes.Equal(d.Data(), []byte{0x41, 0x43, 0x44}) {
		t.Errorf("unexpected data: % X", d.Data())
	}

	if _, err := d.Delete(3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestSet(t *testing.T) {
	d := FromBytes([]byte{0x41, 0x42, 0x43})
	if err := d.Set(1, 0xFF); err != nil {
		t.Fatal(err)
	}

	if val, ok := d.Get(1); !ok || val != 0xFF {
		t.Errorf("expected 0xFF at offset 1, got %02X", val)
	}
	if err := d.Set(3, 0x00); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestSetSameValueIsNotRecorded(t *testing.T) {
	d := FromBytes([]byte{0x10, 0x20})
	if err := d.Set(0, 0x10); err != nil {
		t.Fatal(err)
	}
	if d.UndoDepth() != 0 {
		t.Errorf("expected no undo entry, got %d", d.UndoDepth())
	}
	if d.IsModified() {
		t.Error("no-op set must not mark the document modified")
	}
}

func TestUndo(t *testing.T) {
	d := New()
	if err := d.Insert(0, 0x41); err != nil {
		t.Fatal(err)
	}

	if !d.CanUndo() {
		t.Error("expected CanUndo to be true")
	}

	d.Undo()

	if d.Len() != 0 {
		t.Errorf("expected size 0 after undo, got %d", d.Len())
	}
	if d.IsModified() {
		t.Error("expected unmodified after undoing the only change")
	}
	if _, ok := d.Undo(); ok {
		t.Error("undo on an empty log should report nothing")
	}
}

func TestUndoReturnsClampedOffset(t *testing.T) {
	d := FromBytes([]byte{1, 2, 3})
	if _, err := d.Delete(2); err != nil {
		t.Fatal(err)
	}
	if err := d.Insert(2, 9); err != nil {
		t.Fatal(err)
	}

	pos, ok := d.Undo()
	if !ok || pos != 1 {
		t.Errorf("undo of insert at 2: expected offset 1, got %d (%v)", pos, ok)
	}
	pos, ok = d.Undo()
	if !ok || pos != 2 {
		t.Errorf("undo of delete at 2: expected offset 2, got %d (%v)", pos, ok)
	}
}

func TestRedo(t *testing.T) {
	d := New()
	if err := d.Insert(0, 0x41); err != nil {
		t.Fatal(err)
	}
	d.Undo()

	if !d.CanRedo() {
		t.Error("expected CanRedo to be true")
	}

	d.Redo()

	if d.Len() != 1 {
		t.Errorf("expected size 1 after redo, got %d", d.Len())
	}
	if !d.IsModified() {
		t.Error("expected modified after redo")
	}
}

func TestMutationClearsRedo(t *testing.T) {
	d := FromBytes([]byte{1, 2, 3})
	if err := d.Set(0, 7); err != nil {
		t.Fatal(err)
	}
	d.Undo()
	if err := d.Insert(0, 5); err != nil {
		t.Fatal(err)
	}
	if _, ok := d.Redo(); ok {
		t.Error("redo must yield nothing after an intervening mutation")
	}
}

func TestReadOnly(t *testing.T) {
	d := FromBytes([]byte{1})
	d.SetReadOnly(true)

	if err := d.Set(0, 2); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if err := d.Insert(0, 2); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if _, err := d.Delete(0); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
}

func TestRange(t *testing.T) {
	d := FromBytes([]byte{0x01, 0x02, 0x03, 0x04, 0x05})

	b, ok := d.Range(1, 4)
	if !ok || !bytes.Equal(b, []byte{0x02, 0x03, 0x04}) {
		t.Errorf("unexpected bytes: %v", b)
	}
	if _, ok := d.Range(3, 2); ok {
		t.Error("start > end must fail")
	}
	if _, ok := d.Range(0, 6); ok {
		t.Error("end > len must fail")
	}
	if b, ok := d.Range(5, 5); !ok || len(b) != 0 {
		t.Error("empty range at the end should succeed")
	}
}

func TestOpenAndSave(t *testing.T) {
	f, err := os.CreateTemp("", "hx_test_*.bin")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())

	testData := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	f.Write(testData)
	f.Close()

	d, err := Open(f.Name())
	if err != nil {
		t.Fatal(err)
	}

	if d.Len() != 5 {
		t.Errorf("expected size 5, got %d", d.Len())
	}

	if err := d.Set(2, 0xFF); err != nil {
		t.Fatal(err)
	}
	if err := d.Save(); err != nil {
		t.Fatal(err)
	}
	if d.IsModified() {
		t.Error("expected save to clear modified")
	}

	d2, err := Open(f.Name())
	if err != nil {
		t.Fatal(err)
	}

	if val, ok := d2.Get(2); !ok || val != 0xFF {
		t.Errorf("expected 0xFF at offset 2, got %02X", val)
	}
}

func TestSaveAsFailureKeepsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte{1, 2}, 0644); err != nil {
		t.Fatal(err)
	}
	d, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Set(0, 0xAA); err != nil {
		t.Fatal(err)
	}

	if err := d.SaveAs(filepath.Join(t.TempDir(), "missing", "x.bin")); err == nil {
		t.Fatal("expected save into a missing directory to fail")
	}
	if d.Path() != path {
		t.Errorf("path changed to %q after failed save", d.Path())
	}
	if !d.IsModified() {
		t.Error("expected document to stay modified")
	}

	if err := d.Save(); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0xAA, 2}) {
		t.Errorf("expected % X on disk, got % X", []byte{0xAA, 2}, got)
	}
}

func TestSaveWithoutPath(t *testing.T) {
	d := FromBytes([]byte{1})
	if err := d.Save(); !errors.Is(err, ErrNoPath) {
		t.Errorf("expected ErrNoPath, got %v", err)
	}
}

func TestHasChangedOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte{1, 2}, 0644); err != nil {
		t.Fatal(err)
	}
	d, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	changed, err := d.HasChangedOnDisk()
	if err != nil || changed {
		t.Fatalf("expected unchanged, got %v (%v)", changed, err)
	}

	if err := os.WriteFile(path, []byte{3}, 0644); err != nil {
		t.Fatal(err)
	}
	changed, err = d.HasChangedOnDisk()
	if err != nil || !changed {
		t.Fatalf("expected changed, got %v (%v)", changed, err)
	}
}

func applyRandomEdit(t *rapid.T, d *Document) {
	switch rapid.IntRange(0, 2).Draw(t, "op") {
	case 0:
		if d.Len() == 0 {
			return
		}
		pos := rapid.IntRange(0, d.Len()-1).Draw(t, "setPos")
		_ = d.Set(pos, rapid.Byte().Draw(t, "setVal"))
	case 1:
		pos := rapid.IntRange(0, d.Len()).Draw(t, "insPos")
		_ = d.Insert(pos, rapid.Byte().Draw(t, "insVal"))
	case 2:
		if d.Len() == 0 {
			return
		}
		_, _ = d.Delete(rapid.IntRange(0, d.Len()-1).Draw(t, "delPos"))
	}
}

func TestProperty_UndoRestoresOriginal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.SliceOfN(rapid.Byte(), 0, 32).Draw(t, "initial")
		d := FromBytes(append([]byte(nil), initial...))

		n := rapid.IntRange(1, 40).Draw(t, "edits")
		for i := 0; i < n; i++ {
			applyRandomEdit(t, d)
		}

		for d.CanUndo() {
			d.Undo()
		}

		if !bytes.Equal(d.Data(), initial) {
			t.Fatalf("undo did not restore data: got % X want % X", d.Data(), initial)
		}
		if d.IsModified() {
			t.Fatal("modified flag not restored")
		}
	})
}

func TestProperty_RedoReproducesEdits(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.SliceOfN(rapid.Byte(), 0, 32).Draw(t, "initial")
		d := FromBytes(append([]byte(nil), initial...))

		n := rapid.IntRange(1, 40).Draw(t, "edits")
		for i := 0; i < n; i++ {
			applyRandomEdit(t, d)
		}
		after := append([]byte(nil), d.Data()...)

		undone := 0
		for d.CanUndo() {
			d.Undo()
			undone++
		}
		for i := 0; i < undone; i++ {
			if _, ok := d.Redo(); !ok {
				t.Fatalf("redo %d failed", i)
			}
		}

		if !bytes.Equal(d.Data(), after) {
			t.Fatalf("redo mismatch: got % X want % X", d.Data(), after)
		}
	})
}
