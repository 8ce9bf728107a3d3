// Package grafana pushes single-datapoint cumulative-sum metrics to a
// Grafana Cloud OTLP-style collector endpoint.
package grafana

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/jhoicas/pizza-service/internal/metrics"
	"github.com/jhoicas/pizza-service/pkg/config"
	"github.com/jhoicas/pizza-service/pkg/logger"
)

var _ metrics.Sender = (*Sender)(nil)

// Sender posts one metric per call as a monotonic cumulative sum. Delivery
// failures (non-2xx, network errors) are logged and swallowed; they must
// never reach the request path.
type Sender struct {
	url    string
	apiKey string
	source string
	client *http.Client
	log    *logger.Logger
	now    func() time.Time
}

// Option overrides a Sender collaborator.
type Option func(*Sender)

// WithClock injects the timestamp source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Sender) { s.now = now }
}

// WithHTTPClient injects the HTTP client (tests, custom transports).
func WithHTTPClient(client *http.Client) Option {
	return func(s *Sender) { s.client = client }
}

// NewSender builds a sender for the configured collector.
func NewSender(cfg config.MetricsConfig, log *logger.Logger, opts ...Option) *Sender {
	s := &Sender{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		source: cfg.Source,
		client: &http.Client{Timeout: 5 * time.Second},
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Wire envelope: resourceMetrics[0].scopeMetrics[0].metrics[0] carrying one
// cumulative monotonic int data point with string attributes.
type envelope struct {
	ResourceMetrics []resourceMetrics `json:"resourceMetrics"`
}

type resourceMetrics struct {
	ScopeMetrics []scopeMetrics `json:"scopeMetrics"`
}

type scopeMetrics struct {
	Metrics []metric `json:"metrics"`
}

type metric struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
	Sum  sum    `json:"sum"`
}

type sum struct {
	DataPoints             []dataPoint `json:"dataPoints"`
	AggregationTemporality string      `json:"aggregationTemporality"`
	IsMonotonic            bool        `json:"isMonotonic"`
}

type dataPoint struct {
	AsInt        int64       `json:"asInt"`
	TimeUnixNano int64       `json:"timeUnixNano"`
	Attributes   []attribute `json:"attributes"`
}

type attribute struct {
	Key   string         `json:"key"`
	Value attributeValue `json:"value"`
}

type attributeValue struct {
	StringValue string `json:"stringValue"`
}

// Send delivers one data point. Implements metrics.Sender.
func (s *Sender) Send(name string, value int64, attrs map[string]string) {
	body, err := json.Marshal(s.buildEnvelope(name, value, attrs))
	if err != nil {
		s.log.Error().Err(err).Str("metric", name).Msg("marshal metric envelope")
		return
	}

	req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		s.log.Error().Err(err).Str("metric", name).Msg("build metric request")
		return
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error().Err(err).Str("metric", name).Msg("push metric")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.log.Error().
			Int("status", resp.StatusCode).
			Str("metric", name).
			Str("response", string(text)).
			Msg("metrics collector rejected push")
		return
	}
	s.log.Debug().Str("metric", name).Int64("value", value).Msg("pushed metric")
}

func (s *Sender) buildEnvelope(name string, value int64, attrs map[string]string) envelope {
	merged := make(map[string]string, len(attrs)+1)
	for k, v := range attrs {
		merged[k] = v
	}
	merged["source"] = s.source

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attributes := make([]attribute, 0, len(keys))
	for _, k := range keys {
		attributes = append(attributes, attribute{Key: k, Value: attributeValue{StringValue: merged[k]}})
	}

	return envelope{
		ResourceMetrics: []resourceMetrics{{
			ScopeMetrics: []scopeMetrics{{
				Metrics: []metric{{
					Name: name,
					Unit: "1",
					Sum: sum{
						DataPoints: []dataPoint{{
							AsInt:        value,
							TimeUnixNano: s.now().UnixNano(),
							Attributes:   attributes,
						}},
						AggregationTemporality: "AGGREGATION_TEMPORALITY_CUMULATIVE",
						IsMonotonic:            true,
					},
				}},
			}},
		}},
	}
}
