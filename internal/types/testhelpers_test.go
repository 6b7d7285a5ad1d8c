package types

// testClientContext builds a ClientContext over five freshly-minted class
// descriptors, enough to exercise every predicate and nullability rule
// without pulling in internal/oracle/hierarchy.
func testClientContext() *ClientContext {
	return &ClientContext{
		NonNullableByDefault: true,
		ObjectClass:          &ClassDesc{Name: "Object"},
		FunctionClass:        &ClassDesc{Name: "Function"},
		FutureClass:          &ClassDesc{Name: "Future"},
		FutureOrClass:        &ClassDesc{Name: "FutureOr"},
		NullClass:            &ClassDesc{Name: "Null"},
	}
}
