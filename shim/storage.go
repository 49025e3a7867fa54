package shim

import "github.com/mna/chaosvm/types"

// Storage backs both window.sessionStorage and window.localStorage -- a
// plain string-keyed bag reached through getItem/setItem, per
// proxy/dom.py's SessionStorage.
type Storage struct {
	*types.Object
}

func NewStorage(class string) *Storage {
	return &Storage{Object: types.NewObject(class)}
}

func (s *Storage) GetAttr(name string) (any, error) {
	switch name {
	case "getItem":
		return types.NativeFunc("getItem", func(_ any, args []any) (any, error) {
			if len(args) == 0 {
				return types.Null, nil
			}
			v, _ := s.Object.GetAttr(types.ToPropertyKey(args[0]))
			if types.IsNullish(v) {
				return types.Null, nil
			}
			return v, nil
		}), nil
	case "setItem":
		return types.NativeFunc("setItem", func(_ any, args []any) (any, error) {
			if len(args) < 2 {
				return types.Undefined, nil
			}
			return types.Undefined, s.Object.SetAttr(types.ToPropertyKey(args[0]), types.ToDisplayString(args[1]))
		}), nil
	case "removeItem":
		return types.NativeFunc("removeItem", func(_ any, args []any) (any, error) {
			if len(args) > 0 {
				s.Object.DeleteAttr(types.ToPropertyKey(args[0]))
			}
			return types.Undefined, nil
		}), nil
	}
	return s.Object.GetAttr(name)
}
