package memory

import (
	"fmt"
	"io"

	"go-jobboard-backend/internal/domain"

	"gopkg.in/yaml.v3"
)

// Seed is the YAML document accepted by LoadSeed:
//
//	employees:
//	  - id: E1
//	    name: Ayesha Khan
//	    email: ayesha@example.com
//	    phone_number: "+92 300 0000000"
//	companies: [C1]
type Seed struct {
	Employees []SeedEmployee `yaml:"employees"`
	Companies []string       `yaml:"companies"`
}

type SeedEmployee struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Email       string `yaml:"email"`
	PhoneNumber string `yaml:"phone_number"`
}

// LoadSeed reads a Seed document from r into the directory and returns the
// number of employees and companies added.
func (d *Directory) LoadSeed(r io.Reader) (int, int, error) {
	var seed Seed
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil && err != io.EOF {
		return 0, 0, fmt.Errorf("decode seed: %w", err)
	}

	for i, e := range seed.Employees {
		if e.ID == "" {
			return 0, 0, fmt.Errorf("seed employee %d: id is required", i)
		}
	}
	for _, e := range seed.Employees {
		d.AddEmployee(domain.Employee{
			ID:          e.ID,
			Name:        e.Name,
			Email:       e.Email,
			PhoneNumber: e.PhoneNumber,
		})
	}
	for _, id := range seed.Companies {
		if id != "" {
			d.AddCompany(id)
		}
	}
	return len(seed.Employees), len(seed.Companies), nil
}
