package agent

// SeedAgents is the launch partner roster. The directory is refreshed by
// redeploying with an updated list; see NewStaticDirectory.
func SeedAgents() (agents []Agent, fallbackIDs []string) {
	agents = []Agent{
		{
			ID:       "agt-thandi-nkosi",
			Name:     "Thandi Nkosi",
			Agency:   "Northside Realty",
			Phone:    "+27 82 123 4567",
			Email:    "thandi@northsiderealty.example",
			Suburbs:  []string{"bryanston", "sandton", "morningside"},
			Verified: true,
		},
		{
			ID:       "agt-pieter-van-wyk",
			Name:     "Pieter van Wyk",
			Agency:   "City Bowl Properties",
			Phone:    "+27 83 234 5678",
			Email:    "pieter@citybowlproperties.example",
			Suburbs:  []string{"gardens", "tamboerskloof", "vredehoek"},
			Verified: true,
		},
		{
			ID:       "agt-naledi-dlamini",
			Name:     "Naledi Dlamini",
			Agency:   "Umhlanga Coastal Homes",
			Phone:    "+27 84 345 6789",
			Email:    "naledi@umhlangacoastal.example",
			Suburbs:  []string{"umhlanga", "la lucia", "durban north"},
			Verified: true,
		},
		{
			ID:       "agt-sipho-mthembu",
			Name:     "Sipho Mthembu",
			Agency:   "Northside Realty",
			Phone:    "+27 82 456 7890",
			Email:    "sipho@northsiderealty.example",
			Suburbs:  []string{"fourways", "bryanston", "lonehill"},
			Verified: false,
		},
		{
			ID:       "agt-annelie-botha",
			Name:     "Annelie Botha",
			Agency:   "Winelands Estates",
			Phone:    "+27 83 567 8901",
			Email:    "annelie@winelandsestates.example",
			Suburbs:  []string{"stellenbosch", "somerset west", "paarl"},
			Verified: true,
		},
	}
	// National desk: takes leads no local agent serves.
	fallbackIDs = []string{"agt-thandi-nkosi", "agt-naledi-dlamini"}
	return agents, fallbackIDs
}
