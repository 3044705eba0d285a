package element

// Comment is a full-line comment kept verbatim.
type Comment struct {
	Base
}

func NewComment(line string, meta Meta) (Element, error) {
	return &Comment{Base: newBase(KindComment, line, meta)}, nil
}

func (c *Comment) Clone() Element {
	cp := *c
	return &cp
}

// Opaque keeps lines of device families that have no token structure
// (xspice, behavioral sources, numerical devices).
type Opaque struct {
	Base
}

func opaque(kind Kind) Constructor {
	return func(line string, meta Meta) (Element, error) {
		return &Opaque{Base: newBase(kind, line, meta)}, nil
	}
}

func (o *Opaque) Clone() Element {
	cp := *o
	return &cp
}
