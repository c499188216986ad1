package memory

import "bytes"

// Binary encoding of a module that defines and exports a single memory.

const (
	sectionMemory = 0x05
	sectionExport = 0x07
	exportMemory  = 0x02
	limitsMinOnly = 0x00
	limitsMinMax  = 0x01
)

var moduleHeader = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func writeLEB128u(w *bytes.Buffer, v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.WriteByte(b)
		if v == 0 {
			break
		}
	}
}

func writeName(w *bytes.Buffer, name string) {
	writeLEB128u(w, uint32(len(name)))
	w.WriteString(name)
}

func writeSection(w *bytes.Buffer, id byte, content []byte) {
	w.WriteByte(id)
	writeLEB128u(w, uint32(len(content)))
	w.Write(content)
}

// memoryModule encodes a module exporting one memory of minPages pages.
// maxPages of 0 leaves the memory unbounded up to the wazero limit.
func memoryModule(name string, minPages, maxPages uint32) []byte {
	var mem bytes.Buffer
	writeLEB128u(&mem, 1)
	if maxPages > 0 {
		mem.WriteByte(limitsMinMax)
		writeLEB128u(&mem, minPages)
		writeLEB128u(&mem, maxPages)
	} else {
		mem.WriteByte(limitsMinOnly)
		writeLEB128u(&mem, minPages)
	}

	var exp bytes.Buffer
	writeLEB128u(&exp, 1)
	writeName(&exp, name)
	exp.WriteByte(exportMemory)
	writeLEB128u(&exp, 0)

	var out bytes.Buffer
	out.Write(moduleHeader)
	writeSection(&out, sectionMemory, mem.Bytes())
	writeSection(&out, sectionExport, exp.Bytes())
	return out.Bytes()
}
