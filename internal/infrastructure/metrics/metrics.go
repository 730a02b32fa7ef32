package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels counted by the service.
const (
	UserCreated    = "user_created_total"
	UserDeleted    = "user_deleted_total"
	UserDisabled   = "user_disabled_total"
	UserTokenReset = "user_token_reset_total"
	AuthDenied     = "auth_denied_total"
	AppRequests    = "app_requests_total"
)

// NewCounter registers the general counter vector on the default registry.
func NewCounter() *prometheus.CounterVec {
	return NewCounterWith(prometheus.DefaultRegisterer)
}

func NewCounterWith(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bakaapi",
			Name:      "general_counters",
			Help:      "Account lifecycle, auth and request counters, labelled by result.",
		},
		[]string{"result"})
}
