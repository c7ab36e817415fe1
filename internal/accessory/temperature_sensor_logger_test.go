package accessory_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sensor-logger/internal/accessory"
	"sensor-logger/internal/infra/async"
	"sensor-logger/internal/sensorlog/domain"
	"sensor-logger/internal/sensorlog/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _ = Describe("TemperatureSensorLogger", func() {
	var (
		config   accessory.Config
		broker   async.InternalBroker
		sensor   *accessory.TemperatureSensorLogger
		logs     *observer.ObservedLogs
		dataPath string
	)

	BeforeEach(func() {
		dataPath = filepath.Join(GinkgoT().TempDir(), "nested", "data")
		config = accessory.Config{DataPath: dataPath, Port: 0}
		broker = nil
	})

	JustBeforeEach(func() {
		var core zapcore.Core
		core, logs = observer.New(zapcore.DebugLevel)

		var err error
		sensor, err = accessory.New(config, zap.New(core).Sugar(), broker)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if sensor != nil {
			Expect(sensor.Close(context.Background())).To(Succeed())
		}
	})

	sendTo := func(method, path, body string) (int, string) {
		host := fmt.Sprintf("127.0.0.1:%d", sensor.Port())
		request, err := http.NewRequest(method, "http://"+host, strings.NewReader(body))
		Expect(err).NotTo(HaveOccurred())
		request.URL.Opaque = "//" + host + path

		client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}}
		response, err := client.Do(request)
		Expect(err).NotTo(HaveOccurred())
		defer response.Body.Close()

		content, err := io.ReadAll(response.Body)
		Expect(err).NotTo(HaveOccurred())
		return response.StatusCode, string(content)
	}

	send := func(method, body string) (int, string) {
		return sendTo(method, "/", body)
	}

	readSensorFile := func(id string) string {
		content, err := os.ReadFile(filepath.Join(dataPath, id+".txt"))
		Expect(err).NotTo(HaveOccurred())
		return string(content)
	}

	Context("startup", func() {
		It("should create the data directory and bind the listener", func() {
			Expect(sensor.DataPath()).To(Equal(dataPath))
			Expect(dataPath).To(BeADirectory())
			Expect(sensor.Port()).To(BeNumerically(">", 0))
			Expect(logs.FilterMessage("TemperatureSensorLogger HTTP Server is running").Len()).To(Equal(1))
		})

		It("should not log the debug state when debug is off", func() {
			Expect(logs.FilterMessageSnippet("Debug mode").Len()).To(BeZero())
		})

		It("should expose no services", func() {
			Expect(sensor.GetServices()).NotTo(BeNil())
			Expect(sensor.GetServices()).To(BeEmpty())
		})

		When("debug is on", func() {
			BeforeEach(func() {
				config.Debug = true
			})

			It("should log the debug state", func() {
				Expect(logs.FilterMessage("Plugin initialized. Debug mode is on.").Len()).To(Equal(1))
			})
		})
	})

	Context("ingestion", func() {
		It("should write one file per sensor", func() {
			status, body := send(http.MethodPost, `{"id":"kitchen","temperature":21.5}`)
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(Equal("Data logged"))

			status, _ = send(http.MethodPost, `{"id":"garage","temperature":"9"}`)
			Expect(status).To(Equal(http.StatusOK))

			Expect(readSensorFile("kitchen")).To(Equal("21.5"))
			Expect(readSensorFile("garage")).To(Equal("9"))
		})

		It("should round-trip the temperature text", func() {
			status, _ := send(http.MethodPost, `{"id":"s1","temperature":"23.5"}`)

			Expect(status).To(Equal(http.StatusOK))
			Expect(readSensorFile("s1")).To(Equal("23.5"))
		})

		It("should be idempotent for repeated readings", func() {
			for range 2 {
				status, body := send(http.MethodPost, `{"id":"s1","temperature":"23.5"}`)
				Expect(status).To(Equal(http.StatusOK))
				Expect(body).To(Equal("Data logged"))
			}

			Expect(readSensorFile("s1")).To(Equal("23.5"))
		})

		It("should keep the last value", func() {
			send(http.MethodPost, `{"id":"s1","temperature":"30.25"}`)
			send(http.MethodPost, `{"id":"s1","temperature":"4"}`)

			Expect(readSensorFile("s1")).To(Equal("4"))
		})

		It("should write unsanitised text verbatim", func() {
			status, _ := send(http.MethodPost, `{"id":"s1","temperature":"23,5°C"}`)

			Expect(status).To(Equal(http.StatusOK))
			Expect(readSensorFile("s1")).To(Equal("23,5°C"))
		})

		It("should reject readings without id", func() {
			status, body := send(http.MethodPost, `{"temperature": 20}`)

			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(Equal("Bad Request"))
			Expect(os.ReadDir(dataPath)).To(BeEmpty())
		})

		It("should reject malformed json", func() {
			status, body := send(http.MethodPost, `{not json`)

			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(Equal("Bad Request"))
		})

		DescribeTable("should ignore the request path",
			func(path string) {
				status, body := sendTo(http.MethodPost, path, `{"id":"s1","temperature":"20"}`)

				Expect(status).To(Equal(http.StatusOK))
				Expect(body).To(Equal("Data logged"))
				Expect(readSensorFile("s1")).To(Equal("20"))
			},
			Entry("root", "/"),
			Entry("nested path", "/sensors/s1"),
			Entry("double slash", "//a"),
			Entry("dot segments", "/a/../b"),
		)

		DescribeTable("should answer 404 to other methods on any path",
			func(path string) {
				status, body := sendTo(http.MethodGet, path, "")

				Expect(status).To(Equal(http.StatusNotFound))
				Expect(body).To(Equal("Not Found"))
			},
			Entry("double slash", "//a"),
			Entry("dot segments", "/a/../b"),
		)

		It("should answer 404 to other methods without touching the data directory", func() {
			status, body := send(http.MethodGet, "")

			Expect(status).To(Equal(http.StatusNotFound))
			Expect(body).To(Equal("Not Found"))
			Expect(os.ReadDir(dataPath)).To(BeEmpty())
		})

		When("sanitisation is enabled", func() {
			BeforeEach(func() {
				config.ShouldSanitiseNumber = true
			})

			It("should extract the number", func() {
				status, _ := send(http.MethodPost, `{"id":"s1","temperature":"23,5°C"}`)

				Expect(status).To(Equal(http.StatusOK))
				Expect(readSensorFile("s1")).To(Equal("23.5"))
			})

			It("should reject text without a number", func() {
				status, body := send(http.MethodPost, `{"id":"s2","temperature":"abc"}`)

				Expect(status).To(Equal(http.StatusBadRequest))
				Expect(body).To(Equal("Bad Request"))
				Expect(filepath.Join(dataPath, "s2.txt")).NotTo(BeAnExistingFile())
			})
		})

		When("strict sensor ids are enabled", func() {
			BeforeEach(func() {
				config.StrictSensorIDs = true
			})

			It("should reject identifiers with path separators", func() {
				status, _ := send(http.MethodPost, `{"id":"../escape","temperature":"1"}`)

				Expect(status).To(Equal(http.StatusBadRequest))
				Expect(filepath.Join(filepath.Dir(dataPath), "escape.txt")).NotTo(BeAnExistingFile())
			})
		})

		When("the sensor file cannot be written", func() {
			It("should answer 500 and log the sensor id", func() {
				Expect(os.Mkdir(filepath.Join(dataPath, "locked.txt"), 0o755)).To(Succeed())

				status, body := send(http.MethodPost, `{"id":"locked","temperature":"1"}`)

				Expect(status).To(Equal(http.StatusInternalServerError))
				Expect(body).To(Equal("Internal Server Error"))
				entries := logs.FilterMessage("Error writing the file for sensor").All()
				Expect(entries).To(HaveLen(1))
				Expect(entries[0].ContextMap()).To(HaveKeyWithValue("sensor_id", "locked"))
			})
		})

		When("a broker is attached", func() {
			var subscription async.Subscription

			BeforeEach(func() {
				localBroker := async.NewLocalBroker()
				DeferCleanup(localBroker.Stop)
				subscription, _ = localBroker.Subscribe(usecases.TopicReadingLogged)
				broker = localBroker
			})

			It("should publish logged readings", func() {
				send(http.MethodPost, `{"id":"s1","temperature":"18"}`)

				Eventually(subscription.Receiver, time.Second).Should(Receive(HaveField("Value",
					HaveField("SensorID", domain.SensorID("s1")),
				)))
			})
		})
	})

	Context("startup failures", func() {
		It("should fail when the data directory cannot be created", func() {
			blocker := filepath.Join(GinkgoT().TempDir(), "blocker")
			Expect(os.WriteFile(blocker, []byte("x"), 0o644)).To(Succeed())

			failed, err := accessory.New(accessory.Config{DataPath: filepath.Join(blocker, "data")}, zap.NewNop().Sugar(), nil)

			Expect(err).To(HaveOccurred())
			Expect(failed).To(BeNil())
		})

		It("should fail when the port is taken", func() {
			failed, err := accessory.New(accessory.Config{DataPath: dataPath, Port: sensor.Port()}, zap.NewNop().Sugar(), nil)

			Expect(err).To(HaveOccurred())
			Expect(failed).To(BeNil())
		})
	})
})
