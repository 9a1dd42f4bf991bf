package restaurant

// Lookup — результат поиска по id: либо Found(dto), либо NotFound.
type Lookup struct {
	dto   Dto
	found bool
}

func Found(d Dto) Lookup { return Lookup{dto: d, found: true} }

// NotFound — нормальный исход, не ошибка.
func NotFound() Lookup { return Lookup{} }

// Get возвращает DTO и признак наличия.
func (l Lookup) Get() (Dto, bool) { return l.dto, l.found }

func (l Lookup) IsFound() bool { return l.found }
