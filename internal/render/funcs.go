package render

import (
	"fmt"
	"reflect"
)

// index replaces the text/template builtin of the same name.
// Unlike the builtin, a missing map key is an error, and a negative
// position counts back from the end of a slice, array or string.
func index(item any, indexes ...any) (any, error) {
	v := reflect.ValueOf(item)
	if !v.IsValid() {
		return nil, fmt.Errorf("index of untyped nil")
	}

	for _, ix := range indexes {
		v = indirect(v)
		switch v.Kind() {
		case reflect.Map:
			key, err := mapKey(v.Type().Key(), ix)
			if err != nil {
				return nil, err
			}
			elem := v.MapIndex(key)
			if !elem.IsValid() {
				return nil, fmt.Errorf("map has no entry for key %q", fmt.Sprint(ix))
			}
			v = elem
		case reflect.Slice, reflect.Array, reflect.String:
			pos, err := toInt(ix)
			if err != nil {
				return nil, err
			}
			n := v.Len()
			i := pos
			if i < 0 {
				i += n
			}
			if i < 0 || i >= n {
				return nil, fmt.Errorf("index %d out of range for length %d", pos, n)
			}
			v = v.Index(i)
		case reflect.Invalid:
			return nil, fmt.Errorf("index of nil value")
		default:
			return nil, fmt.Errorf("can't index item of type %s", v.Type())
		}
	}
	return v.Interface(), nil
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func mapKey(keyType reflect.Type, ix any) (reflect.Value, error) {
	key := reflect.ValueOf(ix)
	switch {
	case !key.IsValid():
		return reflect.Value{}, fmt.Errorf("nil map key")
	case key.Type().AssignableTo(keyType):
		return key, nil
	case key.Type().ConvertibleTo(keyType) && key.Kind() == keyType.Kind():
		return key.Convert(keyType), nil
	default:
		return reflect.Value{}, fmt.Errorf("key of type %s does not match map key type %s", key.Type(), keyType)
	}
}

func toInt(ix any) (int, error) {
	v := reflect.ValueOf(ix)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int(v.Uint()), nil
	default:
		return 0, fmt.Errorf("cannot index slice with %v", ix)
	}
}
