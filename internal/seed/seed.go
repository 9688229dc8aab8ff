// Package seed populates the catalog with the library's base book list.
package seed

import (
	"errors"
	"fmt"
	"log"

	"github.com/mrlokans/library-tracker/internal/database"
	"github.com/mrlokans/library-tracker/internal/library"
)

// SeedBook is one catalog entry to insert at startup.
type SeedBook struct {
	Title  string
	Author string
	Year   int
}

// Catalog is the fixed seed list. Re-seeding is idempotent: already-present
// titles are rejected by the unique title index and skipped.
var Catalog = []SeedBook{
	{"Altorių šešėly", "Vincas Mykolaitis-Putinas", 1933},
	{"Balta drobulė", "Antanas Škėma", 1958},
	{"Dievų miškas", "Balys Sruoga", 1957},
	{"Sodybų tuštėjimo metas", "Juozas Aputis", 1970},
	{"Žemės duona", "Jonas Avyžius", 1951},
	{"Mėnulio vaikai", "Vytautė Žilinskaitė", 1988},
	{"Dienoraštis be datų", "Julius Sasnauskas", 2003},
	{"Duobė", "Herbjørg Wassmo", 2002},
	{"Baltaragio malūnas", "Kazys Boruta", 1945},
	{"Kryžkelė", "Alfonsas Bieliauskas", 1980},
	{"Šventųjų gyvūnų miestas", "Rūta Šepetys", 2017},
	{"Raudonasis trejetas", "Ričardas Gavelis", 2002},
	{"Įgimta meilė", "Ieva Simonaitytė", 1980},
	{"Nepriklausomybės akto signatarai", "Vaidotas Beniušis", 2019},
	{"Užburtas miestas", "Jūratė Svetikaitė", 2015},
	{"Po šiaurės vėju", "Vaidotas Verikas", 2007},
	{"Meilės ir karščio dienos", "Kristina Sabaliauskaitė", 2009},
	{"Lūžis", "Lina Ever", 2010},
	{"Atvirkščiai", "Kestutis Kasparavičius", 2013},
}

// Run inserts the catalog through the regular AddBook operation. Duplicate
// titles are reported and skipped, never treated as a startup failure.
// Returns the number of books actually created.
func Run(service *library.Service) (int, error) {
	created := 0
	for _, b := range Catalog {
		_, err := service.AddBook(b.Title, b.Author, b.Year)
		if err != nil {
			if errors.Is(err, database.ErrDuplicateTitle) {
				log.Printf("Seed: %q already in catalog, skipping", b.Title)
				continue
			}
			return created, fmt.Errorf("failed to seed %q: %w", b.Title, err)
		}
		created++
	}
	return created, nil
}
