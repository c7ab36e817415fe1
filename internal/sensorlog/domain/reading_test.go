package domain_test

import (
	"sensor-logger/internal/sensorlog/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Reading", func() {
	Context("ParseReading", func() {
		DescribeTable("should coerce id and temperature to text",
			func(body string, expected domain.Reading) {
				reading, err := domain.ParseReading([]byte(body))

				Expect(err).NotTo(HaveOccurred())
				Expect(reading).To(Equal(expected))
			},
			Entry("string values", `{"id":"s1","temperature":"23.5"}`,
				domain.Reading{SensorID: "s1", Temperature: "23.5"}),
			Entry("numeric values", `{"id":7,"temperature":23.5}`,
				domain.Reading{SensorID: "7", Temperature: "23.5"}),
			Entry("trailing zeros are dropped", `{"id":"s1","temperature":23.50}`,
				domain.Reading{SensorID: "s1", Temperature: "23.5"}),
			Entry("raw text is kept", `{"id":"s1","temperature":"23,5°C"}`,
				domain.Reading{SensorID: "s1", Temperature: "23,5°C"}),
			Entry("negative numbers", `{"id":"s1","temperature":-4}`,
				domain.Reading{SensorID: "s1", Temperature: "-4"}),
			Entry("boolean values", `{"id":true,"temperature":false}`,
				domain.Reading{SensorID: "true", Temperature: "false"}),
			Entry("object values", `{"id":"s1","temperature":{"value":1}}`,
				domain.Reading{SensorID: "s1", Temperature: "[object Object]"}),
			Entry("array values", `{"id":"s1","temperature":[1,null,"a"]}`,
				domain.Reading{SensorID: "s1", Temperature: "1,,a"}),
			Entry("extra fields are ignored", `{"id":"s1","temperature":1,"unit":"C"}`,
				domain.Reading{SensorID: "s1", Temperature: "1"}),
			Entry("last duplicated key wins", `{"id":"a","id":"b","temperature":1}`,
				domain.Reading{SensorID: "b", Temperature: "1"}),
		)

		DescribeTable("should reject invalid payloads",
			func(body string) {
				_, err := domain.ParseReading([]byte(body))

				Expect(err).To(MatchError(domain.ErrValidation))
			},
			Entry("malformed json", `{not json`),
			Entry("empty body", ``),
			Entry("missing id", `{"temperature": 20}`),
			Entry("missing temperature", `{"id": "s1"}`),
			Entry("null temperature", `{"id":"s1","temperature":null}`),
			Entry("null id", `{"id":null,"temperature":1}`),
			Entry("null body", `null`),
			Entry("array body", `[{"id":"s1","temperature":1}]`),
			Entry("number body", `42`),
			Entry("field names are case sensitive", `{"ID":"s1","Temperature":1}`),
			Entry("trailing garbage", `{"id":"s1","temperature":1} x`),
		)
	})

	Context("DecodeRawReading", func() {
		It("should accept an object without the reading fields", func() {
			raw, err := domain.DecodeRawReading([]byte(`{"temperature": 20}`))
			Expect(err).NotTo(HaveOccurred())

			_, err = raw.Reading()
			Expect(err).To(MatchError(domain.ErrValidation))
		})

		It("should reject bodies that are not json", func() {
			_, err := domain.DecodeRawReading([]byte(`{not json`))

			Expect(err).To(MatchError(domain.ErrValidation))
		})
	})

	Context("SensorID", func() {
		It("should name the sensor file after the identifier", func() {
			Expect(domain.SensorID("kitchen").FileName()).To(Equal("kitchen.txt"))
		})

		It("should accept plain identifiers", func() {
			Expect(domain.SensorID("living-room_1").Validate()).To(Succeed())
			Expect(domain.SensorID("..").Validate()).To(Succeed())
		})

		It("should reject identifiers that are not a single file name", func() {
			Expect(domain.SensorID("").Validate()).To(MatchError(domain.ErrValidation))
			Expect(domain.SensorID("../etc/passwd").Validate()).To(MatchError(domain.ErrValidation))
			Expect(domain.SensorID(`a\b`).Validate()).To(MatchError(domain.ErrValidation))
			Expect(domain.SensorID("a\x00b").Validate()).To(MatchError(domain.ErrValidation))
		})
	})
})
