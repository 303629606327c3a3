package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldEndpoint   = "endpoint"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldCacheHit   = "cache_hit"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldMode       = "mode"
	FieldCount      = "count"
	FieldChartPath  = "chart_path"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentAPI    = "api"
	ComponentLoader = "loader"
	ComponentCharts = "charts"
)

// Operations defines standard operation names
const (
	OpReload  = "reload"
	OpRender  = "render"
	OpStartup = "startup"
)

// Fields provides a builder for structured log fields
type Fields map[string]any

// NewFields creates a new Fields instance
func NewFields() Fields {
	return make(Fields)
}

// WithRequestID adds request ID field
func (f Fields) WithRequestID(requestID string) Fields {
	f[FieldRequestID] = requestID
	return f
}

// WithError adds error field
func (f Fields) WithError(err error) Fields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f Fields) WithOperation(op string) Fields {
	f[FieldOperation] = op
	return f
}

// WithPeriod adds year and month fields
func (f Fields) WithPeriod(year, month int) Fields {
	f[FieldYear] = year
	f[FieldMonth] = month
	return f
}

// WithRequest adds outbound request fields
func (f Fields) WithRequest(method, endpoint string) Fields {
	f[FieldMethod] = method
	f[FieldEndpoint] = endpoint
	return f
}

// WithResponse adds response fields
func (f Fields) WithResponse(statusCode int, durationMs int64) Fields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	return f
}

// ToSlice converts Fields to a slice for slog
func (f Fields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
