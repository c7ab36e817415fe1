package mqtt_test

import (
	"sensor-logger/internal/infra/mqtt"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("MQTT Client", func() {
	ginkgo.Context("SimpleClientOpts", func() {
		var opts mqtt.SimpleClientOpts

		ginkgo.When("creating client options", func() {
			ginkgo.BeforeEach(func() {
				opts = mqtt.SimpleClientOpts{
					Broker:   "tcp://localhost:1883",
					ClientID: "test-client",
					Username: "test-user",
					Password: "test-pass",
					Retained: true,
				}
			})

			ginkgo.It("should have correct configuration values", func() {
				gomega.Expect(opts.Broker).To(gomega.Equal("tcp://localhost:1883"))
				gomega.Expect(opts.ClientID).To(gomega.Equal("test-client"))
				gomega.Expect(opts.Username).To(gomega.Equal("test-user"))
				gomega.Expect(opts.Password).To(gomega.Equal("test-pass"))
				gomega.Expect(opts.Retained).To(gomega.BeTrue())
			})
		})
	})

	ginkgo.Context("NewSimpleClient", func() {
		ginkgo.When("the broker is unreachable", func() {
			ginkgo.It("should return an error instead of a client", func() {
				client, err := mqtt.NewSimpleClient(mqtt.SimpleClientOpts{
					Broker:   "tcp://127.0.0.1:1",
					ClientID: "test-client",
				})

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(client).To(gomega.BeNil())
			})
		})
	})
})
