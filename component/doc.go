// Package component maps schema handlers onto WebAssembly component-model
// types so packed structures can be described in WIT and laid out with the
// canonical ABI.
//
// # Type Mapping
//
//	Handler              WIT type
//	──────────────────────────────────────────────
//	u8 u16 u32           u8 u16 u32
//	i8 i16 i32           s8 s16 s32
//	f32 f64              f32 f64
//	bool void            bool
//	s<N> s               string
//	(a,b)                tuple<a, b>
//	[T:N]                list<T>
//	{k:T}                record { k: T }
//
// Children of masked composites are wrapped in option<T>. Field names are
// converted to kebab-case.
package component
