package dnsmsg

// Question is a single entry of a Message's Question section.
type Question struct {
	Name  string
	Type  Type
	Class Class
}

func (q *Question) encode(e *encoder) error {
	if err := e.name(q.Name); err != nil {
		return err
	}
	e.u16(uint16(q.Type))
	e.u16(uint16(q.Class))
	return nil
}

func (d *decoder) parseQuestion() (*Question, error) {
	name, err := d.name()
	if err != nil {
		return nil, err
	}
	typ, err := d.u16()
	if err != nil {
		return nil, err
	}
	class, err := d.u16()
	if err != nil {
		return nil, err
	}
	return &Question{Name: name, Type: Type(typ), Class: Class(class)}, nil
}
