package server

import (
	nethttp "net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	v1 "github.com/iWorld-y/outfit_radar/app/stylist/api/stylist/v1"
	"github.com/iWorld-y/outfit_radar/app/stylist/internal/conf"
	"github.com/iWorld-y/outfit_radar/app/stylist/internal/service"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/metrics"
)

// DefaultMaxUploadBytes 请求体默认上限，照片以 base64 传输时体积会变大
const DefaultMaxUploadBytes = 20 << 20

func NewHTTPServer(c *conf.Server, s *service.StylistService, logger log.Logger) *http.Server {
	hc := c.Http
	if hc == nil {
		hc = &conf.HTTP{}
	}

	origins := hc.CorsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	limit := hc.MaxUploadBytes
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}

	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
		http.Filter(
			cors.Handler(cors.Options{
				AllowedOrigins: origins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
				MaxAge:         300,
			}),
			limitBody(limit),
		),
		http.ErrorEncoder(encodeError),
	}
	if hc.Addr != "" {
		opts = append(opts, http.Address(hc.Addr))
	}
	if hc.Timeout != "" {
		if d, err := time.ParseDuration(hc.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)
	v1.RegisterStylistHTTPServer(srv, s)

	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	metrics.Register()
	srv.Handle("/metrics", promhttp.Handler())

	return srv
}

// limitBody 限制请求体大小，超出后读取请求体会返回错误
func limitBody(n int64) http.FilterFunc {
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			r.Body = nethttp.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
