package domain_test

import (
	"sensor-logger/internal/sensorlog/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SanitiseNumber", func() {
	DescribeTable("should extract the first number",
		func(input, expected string) {
			result, err := domain.SanitiseNumber(domain.Temperature(input))

			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(domain.Temperature(expected)))
		},
		Entry("comma decimal separator with unit", "23,5°C", "23.5"),
		Entry("plain number", "23.5", "23.5"),
		Entry("integer", "21", "21"),
		Entry("negative number", "-3.25", "-3.25"),
		Entry("leading text", "temp=19.75", "19.75"),
		Entry("only the first comma is replaced", "1,5,5", "1.5"),
		Entry("dangling decimal point", "12.", "12"),
		Entry("first of many numbers", "18 / 21", "18"),
	)

	DescribeTable("should reject text without digits",
		func(input string) {
			_, err := domain.SanitiseNumber(domain.Temperature(input))

			Expect(err).To(MatchError(domain.ErrValidation))
		},
		Entry("letters", "abc"),
		Entry("empty", ""),
		Entry("object text", "[object Object]"),
		Entry("non ascii digits", "٢٣"),
	)
})
