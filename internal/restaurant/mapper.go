package restaurant

// ToDto копирует сущность в DTO поле за полем.
func ToDto(r Restaurant) Dto {
	return Dto{
		ID:                    r.ID,
		Name:                  r.Name,
		Address:               r.Address,
		City:                  r.City,
		RestaurantDescription: r.Description,
	}
}

// ToEntity — обратное преобразование.
func ToEntity(d Dto) Restaurant {
	return Restaurant{
		ID:          d.ID,
		Name:        d.Name,
		Address:     d.Address,
		City:        d.City,
		Description: d.RestaurantDescription,
	}
}

// ToDtos всегда возвращает не-nil слайс, чтобы пустой список сериализовался как [].
func ToDtos(list []Restaurant) []Dto {
	out := make([]Dto, 0, len(list))
	for _, r := range list {
		out = append(out, ToDto(r))
	}
	return out
}
