package tracing

import (
	"fmt"

	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
)

// HoneycombSetup installs the OpenTelemetry SDK via the honeycomb distro,
// making GlobalTracer spans recording spans. Endpoint and API key come
// from the standard env vars (HONEYCOMB_API_KEY, OTEL_SERVICE_NAME and
// friends). When disabled, the global no-op provider stays in place and
// the returned shutdown func does nothing.
func HoneycombSetup(enabled bool, serviceName string) (func(), error) {
	if !enabled {
		log.Debugln("tracing disabled, otel SDK not installed")
		return func() {}, nil
	}

	bsp := honeycomb.NewBaggageSpanProcessor()

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithSpanProcessor(bsp),
		otelconfig.WithServiceName(serviceName),
	)
	if err != nil {
		return nil, fmt.Errorf("configure opentelemetry: %w", err)
	}

	log.Debugf("otel SDK installed, service name: %s", serviceName)
	return otelShutdown, nil
}
