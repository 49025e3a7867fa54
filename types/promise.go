package types

// Promise is the host Promise proxy. Per spec.md §4.C and §5, promises
// resolve eagerly and synchronously: the constructor's resolver callback
// runs to completion before the constructor returns, and `.then` collapses
// chains of synchronous resolutions, matching
// proxy/builtins.py's Promise class exactly (including its rejection
// path).
type Promise struct {
	*Object
	result any
	exc    error
}

var _ Value = (*Promise)(nil)

// NewPromise runs cb(resolve, reject) synchronously, capturing whichever of
// the two is invoked.
func NewPromise(cb func(resolve func(any), reject func(error))) *Promise {
	p := &Promise{Object: NewObject("Promise")}
	resolve := func(v any) { p.result = v }
	reject := func(err error) { p.exc = err }
	cb(resolve, reject)
	return p
}

func (p *Promise) String() string { return "[object Promise]" }

// Then implements Promise.prototype.then(onFulfilled, onRejected),
// collapsing a nested Promise result into its own, and forwarding
// rejection through onRejected when present.
func (p *Promise) Then(onFulfilled, onRejected Callable) *Promise {
	if p.exc != nil {
		if onRejected != nil {
			np := NewPromise(func(resolve func(any), _ func(error)) {
				r, err := onRejected.Call(nil, []any{p.exc.Error()})
				if err == nil {
					resolve(r)
				}
			})
			if inner, ok := np.result.(*Promise); ok {
				return inner
			}
			return np
		}
		return p
	}
	if onFulfilled != nil {
		np := NewPromise(func(resolve func(any), _ func(error)) {
			r, err := onFulfilled.Call(nil, []any{p.result})
			if err == nil {
				resolve(r)
			}
		})
		if inner, ok := np.result.(*Promise); ok {
			return inner
		}
		return np
	}
	return p
}

func (p *Promise) GetAttr(name string) (any, error) {
	if name == "then" {
		return NativeFunc("then", func(_ any, args []any) (any, error) {
			var onF, onR Callable
			if len(args) > 0 {
				onF, _ = args[0].(Callable)
			}
			if len(args) > 1 {
				onR, _ = args[1].(Callable)
			}
			return p.Then(onF, onR), nil
		}), nil
	}
	return p.Object.GetAttr(name)
}
