package main

import (
	"flag"
	"log"

	"github.com/outofforest/roster"
	"github.com/outofforest/roster/persistence"
	"github.com/outofforest/roster/pkg/dirfs"
	"github.com/outofforest/roster/records"
)

const capacity = 10

func main() {
	dir := flag.String("dir", "rosterdata", "directory backing the record store")
	flag.Parse()

	fsys, err := dirfs.Mount(*dir)
	if err != nil {
		log.Fatalf("failed to mount backing filesystem: %v", err)
	}
	if err := persistence.Initialize(fsys, capacity, true); err != nil {
		log.Fatalf("failed to initialize record store: %v", err)
	}

	pStore, err := persistence.OpenStore(fsys)
	if err != nil {
		log.Fatalf("failed to open record store: %v", err)
	}
	store := roster.New(pStore)

	employees := []records.Record{
		records.New("JohnDoe", "EMP001", "30", "SeniorEngineer", "50000"),
		records.New("JaneSmith", "EMP002", "35", "Manager", "70000"),
		records.New("Ravi", "EMP003", "28", "SeniorExecutive", "40000"),
		records.New("Raju", "EMP004", "29", "JuniorExecutive", "30000"),
		records.New("Vivek", "EMP005", "21", "CEO", "100000"),
		records.New("Monoj", "EMP006", "25", "MarketingExecutive", "40000"),
		records.New("Harish", "EMP007", "25", "JuniorEngineer", "40000"),
		records.New("Ankit", "EMP008", "26", "SalesExecutive", "30000"),
		records.New("Sai", "EMP009", "26", "Developer", "25000"),
		records.New("Eswar", "EMP010", "28", "TeamLead", "40000"),
	}

	for _, e := range employees {
		index, err := store.Append(e)
		if err != nil {
			log.Fatalf("failed to append employee %s: %v", e.ID, err)
		}
		log.Printf("employee %s stored in slot %d", e.ID, index)
	}

	if _, err := store.Append(records.New("NewEmployee1", "EMP011", "25", "NewPosition1", "60000")); err != nil {
		log.Printf("cannot add new employee: %v", err)
	}

	if err := store.DeleteByKey("EMP006"); err != nil {
		log.Fatalf("failed to delete employee EMP006: %v", err)
	}
	log.Printf("employee EMP006 deleted")

	e, exists := store.FindByKey("EMP009")
	if !exists {
		log.Fatalf("employee EMP009 not found")
	}
	log.Printf("employee EMP009: Name: %s, Age: %s, Position: %s, Salary: %s", e.Name, e.Age, e.Position, e.Salary)
}
