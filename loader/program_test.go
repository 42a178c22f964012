package loader_test

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipesim/loader"
)

func TestLoader(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Loader Suite")
}

var _ = Describe("Read", func() {
	It("strips label lines and records their position", func() {
		src := "addi $t0,$zero,1\nskip:\naddi $t1,$zero,2\n"
		prog, err := loader.Read(strings.NewReader(src))
		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Instructions).To(HaveLen(2))
		Expect(prog.Labels).To(HaveKeyWithValue("skip", 1))
	})

	It("accepts CRLF line endings", func() {
		src := "addi $t0,$zero,1\r\nbeq $t0,$zero,done\r\ndone:\r\n"
		prog, err := loader.Read(strings.NewReader(src))
		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Instructions).To(HaveLen(2))
		Expect(prog.Labels).To(HaveKeyWithValue("done", 2))
	})

	It("accepts a trailing line with no final newline", func() {
		src := "addi $t0,$zero,1\nadd $t1,$t0,$t0"
		prog, err := loader.Read(strings.NewReader(src))
		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Instructions).To(HaveLen(2))
	})

	It("rejects duplicate labels", func() {
		src := "again:\naddi $t0,$t0,1\nagain:\n"
		_, err := loader.Read(strings.NewReader(src))
		Expect(err).To(MatchError(loader.ErrDuplicateLabel))
	})

	It("rejects more than MaxInstructions instruction lines", func() {
		src := strings.Repeat("addi $t0,$zero,1\n", loader.MaxInstructions+1)
		_, err := loader.Read(strings.NewReader(src))
		Expect(err).To(MatchError(loader.ErrTooManyInstructions))
	})

	It("propagates a decode error with the offending line", func() {
		_, err := loader.Read(strings.NewReader("frobnicate $t0,$t1,$t2\n"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("frobnicate"))
	})
})
