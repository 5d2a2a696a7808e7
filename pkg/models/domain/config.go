package domain

import "fmt"

// Heights are the instrument reference heights in cm.
type Heights struct {
	Factory float64
	Mod     float64
}

// InstrumentProfile is one section of the instrument profile file.
type InstrumentProfile struct {
	Name    string
	Heights Heights
}

func (p InstrumentProfile) String() string {
	return fmt.Sprintf("%s:%.2f/%.2f", p.Name, p.Heights.Factory, p.Heights.Mod)
}
