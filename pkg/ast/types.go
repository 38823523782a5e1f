package ast

import "fmt"

// TypeKind selects a cell's storage discipline and projection rule.
type TypeKind int

const (
	TypeInt TypeKind = iota
	TypeFloat
	TypeBool
	TypeChar
	TypeString
	TypeVoid
	TypeArray
)

func (k TypeKind) String() string {
	switch k {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeChar:
		return "char"
	case TypeString:
		return "string"
	case TypeVoid:
		return "void"
	case TypeArray:
		return "array"
	default:
		return fmt.Sprintf("unknown_type_%d", int(k))
	}
}

// Type is a declared type tag. Elem and Size are only meaningful for arrays.
type Type struct {
	Kind TypeKind `json:"kind"`
	Elem *Type    `json:"elem,omitempty"`
	Size int      `json:"size,omitempty"`
}

func Simple(kind TypeKind) Type {
	return Type{Kind: kind}
}

func ArrayOf(elem Type, size int) Type {
	e := elem
	return Type{Kind: TypeArray, Elem: &e, Size: size}
}

func (t Type) IsArray() bool { return t.Kind == TypeArray }

func (t Type) String() string {
	if t.Kind == TypeArray {
		elem := "?"
		if t.Elem != nil {
			elem = t.Elem.String()
		}
		return fmt.Sprintf("%s[%d]", elem, t.Size)
	}
	return t.Kind.String()
}

// TypeFromKeyword maps a type keyword to its tag.
func TypeFromKeyword(word string) (Type, bool) {
	switch word {
	case "int":
		return Simple(TypeInt), true
	case "float":
		return Simple(TypeFloat), true
	case "bool":
		return Simple(TypeBool), true
	case "char":
		return Simple(TypeChar), true
	case "string":
		return Simple(TypeString), true
	case "void":
		return Simple(TypeVoid), true
	default:
		return Type{}, false
	}
}
