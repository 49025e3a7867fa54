package types

import "fmt"

// Symbol is the host Symbol proxy. Symbol.iterator is the one well-known
// symbol, exposed as the Symbol.iterator static; a property read keyed by it
// is not routed to any iteration protocol and stringifies like any other
// key. Symbol.for additionally maintains the global symbol registry from
// proxy/builtins.py's Symbol class.
type Symbol struct {
	tag string
}

var _ Value = (*Symbol)(nil)

// NewSymbol returns a fresh, unregistered symbol with the given
// description tag.
func NewSymbol(tag string) *Symbol { return &Symbol{tag: tag} }

func (s *Symbol) Type() string   { return "symbol" }
func (s *Symbol) String() string { return fmt.Sprintf("Symbol(%s)", s.tag) }

// SymbolIterator is the well-known Symbol.iterator instance.
var SymbolIterator = NewSymbol("Symbol.iterator")

var symbolRegistry = map[string]*Symbol{}

// SymbolFor implements Symbol.for: returns the registered symbol for key,
// creating it on first use.
func SymbolFor(key string) *Symbol {
	if s, ok := symbolRegistry[key]; ok {
		return s
	}
	s := NewSymbol(key)
	symbolRegistry[key] = s
	return s
}

// SymbolKeyFor implements Symbol.keyFor: the registry key for a symbol
// previously obtained via SymbolFor, or "" if not registered.
func SymbolKeyFor(s *Symbol) (string, bool) {
	for k, v := range symbolRegistry {
		if v == s {
			return k, true
		}
	}
	return "", false
}
