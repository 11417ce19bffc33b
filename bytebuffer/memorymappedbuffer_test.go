package bytebuffer

import (
	"io/ioutil"
	"os"
	"path"
	"testing"
)

func TestMemoryMappedBuffer(t *testing.T) {
	loc := path.Join(os.TempDir(), "bytebuffer_memorymappedbuffer_test.tmp")

	if _, err := os.Stat(loc); err == nil {
		if err = os.Remove(loc); err != nil {
			t.Error("Cannot proceed with test as cannot remove the old mapping file")
			return
		}
	}

	b, err := NewMemoryMappedBuffer(loc, 10)
	if err != nil {
		t.Error("Cannot proceed with test as cannot create buffer\n", err)
		return
	}

	if _, err = os.Stat(loc); err != nil {
		t.Errorf("No file created at %v despite the buffer being initialized", loc)
		return
	}

	if b.Resizable() {
		t.Error("a memory mapped buffer should never be resizable")
	}

	b.Bytes()[5] = 'x'
	if err = b.Sync(); err != nil {
		t.Error("Cannot sync MemoryMappedBuffer contents to disk")
		return
	}

	data, err := ioutil.ReadFile(loc)
	if err != nil {
		t.Error("Cannot read data from memory mapped file")
		return
	}

	if data[5] != 'x' {
		t.Error("Data written in buffer not getting reflected in file")
	}

	if err = b.Unmap(true); err != nil {
		t.Error(err)
	}

	if _, err := os.Stat(loc); err == nil {
		t.Error("Memory mapped file not getting deleted on Unmap")
	}
}
