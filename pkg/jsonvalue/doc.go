// Package jsonvalue is the JSON bridge used by the token decoder.
//
// TryParse turns decoded header and payload text into a Value whose Kind
// discriminates objects, arrays, strings, numbers, booleans and null. The
// decoder only needs the discriminator and read access, so Value is an
// immutable view over a github.com/valyala/fastjson document.
package jsonvalue
