package ast

// DataType is a declared parameter, local or return type.
type DataType interface {
	String() string
	dataType()
}

type PrimitiveKind int

const (
	Integer PrimitiveKind = iota
	Real
	String
	Char
	Boolean
)

var primitiveNames = map[PrimitiveKind]string{
	Integer: "integer",
	Real:    "real",
	String:  "string",
	Char:    "char",
	Boolean: "boolean",
}

func (k PrimitiveKind) String() string {
	if name, ok := primitiveNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Primitive struct {
	Kind PrimitiveKind
}

type ArrayType struct {
	Of DataType
}

type RecordType struct {
	Name string
}

func (t *Primitive) String() string  { return t.Kind.String() }
func (t *ArrayType) String() string  { return "array of " + t.Of.String() }
func (t *RecordType) String() string { return "record " + t.Name }

func (*Primitive) dataType()  {}
func (*ArrayType) dataType()  {}
func (*RecordType) dataType() {}
