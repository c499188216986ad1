// Package layoutfile declares native structure types in TOML.
//
// A document holds an array of struct tables. Fields are [name, type] pairs
// laid out in order; offset tables add fields at fixed positions:
//
//	[[struct]]
//	name = "NODE"
//	fields = [["value", "c_uint32"], ["next", "ptr64<NODE>"]]
//
//	[[struct.offset]]
//	at = 0
//	name = "value_alias"
//	type = "c_uint32"
//
// Type expressions are scalar names (c_uint32, c_double, umem, ...),
// declared struct names, T[n] arrays and ptr32<T>, ptr64<T> or ptr<T>
// pointers. Structs may be referenced before they are declared. A struct
// may point at itself but not contain itself by value.
package layoutfile
