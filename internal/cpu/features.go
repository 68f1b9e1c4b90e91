package cpu

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Features describes the host CPU as far as cycle measurements care.
type Features struct {
	Architecture string
	Counter      string
	HasSSE2      bool
	HasAVX2      bool
	HasAVX512    bool
	HasASIMD     bool
}

// DetectFeatures reports the CPU features of the current process.
func DetectFeatures() Features {
	return Features{
		Architecture: runtime.GOARCH,
		Counter:      CounterName,
		HasSSE2:      cpu.X86.HasSSE2,
		HasAVX2:      cpu.X86.HasAVX2,
		HasAVX512:    cpu.X86.HasAVX512,
		HasASIMD:     cpu.ARM64.HasASIMD,
	}
}

// String renders the features as "arch/counter flag flag ...".
func (f Features) String() string {
	var b strings.Builder

	b.WriteString(f.Architecture)
	b.WriteByte('/')
	b.WriteString(f.Counter)

	for _, flag := range []struct {
		on   bool
		name string
	}{
		{f.HasSSE2, "sse2"},
		{f.HasAVX2, "avx2"},
		{f.HasAVX512, "avx512"},
		{f.HasASIMD, "asimd"},
	} {
		if flag.on {
			b.WriteByte(' ')
			b.WriteString(flag.name)
		}
	}

	return b.String()
}
