package seed

import "restaurantlisting/internal/restaurant"

// File — один YAML-файл с начальными данными.
type File struct {
	Restaurants []Item `yaml:"restaurants"`
}

type Item struct {
	Name        string `yaml:"name"`
	Address     string `yaml:"address"`
	City        string `yaml:"city"`
	Description string `yaml:"description"`
}

// Dto — элемент сида в виде, в котором его принимает сервис.
func (it Item) Dto() restaurant.Dto {
	return restaurant.Dto{
		Name:                  it.Name,
		Address:               it.Address,
		City:                  it.City,
		RestaurantDescription: it.Description,
	}
}
