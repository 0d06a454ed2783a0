// Package mapping provides the metadata model consumed by the conversion
// engine: mapping descriptors, target type descriptors, the registry of named
// targets and transforms, and the YAML mapping-file loader.
//
// Descriptors are declared once, before any conversion, either in Go:
//
//	var Car = mapping.Define[Car]("Car").
//		Param(0, mapping.Field("make", "manufacturer").Require().
//			Validate(validate.IsString())).
//		Property("Year", mapping.Field("year").WithDefault(2000))
//
// or in a mapping file:
//
//	version: "1"
//	types:
//	  - name: Car
//	    record: true
//	    properties:
//	      - name: make
//	        aliases: [make, manufacturer]
//	        required: true
//	        validate:
//	          - type: string
//	            rules:
//	              - maxLength: 20
//
// # Alias paths
//
// Aliases support:
//   - Simple keys: "make"
//   - Nested keys: "engine.power"
//   - Numeric segments, which index sequences: "items.0" or "items[0]"
//
// # Targets
//
// Type[T] describes Go structs; properties are assigned by a setter or by
// the reflection-based field assigner. Record describes dynamic targets whose
// instances are map[string]any.
package mapping
