package observability

// MultiObserver fans each operation report out to a list of observers
// in order. Use it to feed metrics and tracing from a single hook.
//
// Example:
//
//	obs := observability.NewMultiObserver(
//		observability.NewPrometheusObserver(m),
//		observability.NewTracingObserver(),
//	)
type MultiObserver struct {
	observers []Observer
}

// NewMultiObserver builds a MultiObserver over the given observers.
// Nil entries are dropped.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	kept := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			kept = append(kept, o)
		}
	}
	return &MultiObserver{observers: kept}
}

// ObserveOperation forwards the report to every registered observer.
func (m *MultiObserver) ObserveOperation(ctx OperationContext) {
	for _, o := range m.observers {
		o.ObserveOperation(ctx)
	}
}
