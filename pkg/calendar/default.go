package calendar

import "tableflip.dev/gardencal/pkg/entry"

// DefaultCatalog returns the built-in spring calendar.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Periods: []string{"april", "may", "early_june"},
		Items: Index{
			"april": {
				entry.DirectSowing: {
					et("carrot", "porgand"),
					et("parsnip", "pastinaak"),
					et("radish", "redis"),
					et("turnip", "naeris"),
					et("peas", "hernes"),
					et("spinach", "spinat"),
					et("arugula", "rukola"),
					et("lettuce", "salat"),
					et("dill", "till"),
					et("parsley", "petersell"),
				},
				entry.SeedlingStart: {
					et("cabbage", "kapsas"),
					et("cauliflower", "lillkapsas"),
					et("broccoli", "brokoli"),
					et("kale", "lehtkapsas"),
					et("tomato", "tomat"),
					et("pepper", "paprika"),
					et("eggplant", "baklažaan"),
					et("pumpkin", "kõrvits"),
					et("zucchini", "suvikõrvits"),
					et("melon", "melon"),
					et("basil", "basiilik"),
					et("thyme", "tüümian"),
					et("sage", "salvei"),
				},
				entry.Greenhouse: {
					et("radish", "redis"),
					et("spinach", "spinat"),
					et("lettuce", "salat"),
					et("dill", "till"),
				},
				entry.GardenTasks: {
					et("Pruning fruit trees and berry bushes (before bud break)", "Viljapuude ja marjapõõsaste lõikamine (enne pungade puhkemist)"),
					et("Cleaning strawberry beds", "Maasikapeenarde puhastamine"),
					et("Turning compost", "Komposti segamine"),
					et("Cleaning and preparing greenhouse", "Kasvuhoone puhastamine ja ettevalmistamine"),
					et("Loosening and fertilizing beds", "Peenarde kobestamine ja väetamine"),
				},
			},
			"may": {
				entry.DirectSowing: {
					et("carrot", "porgand"),
					et("beetroot", "peet"),
					et("radish", "redis"),
					et("turnip", "naeris"),
					et("parsnip", "pastinaak"),
					et("dill", "till"),
					et("parsley", "petersell"),
					et("lettuce", "salat"),
					et("arugula", "rukola"),
					et("spinach (new sowing)", "spinat (uus külv)"),
					et("chard", "lehtpeet"),
					et("peas", "hernes"),
					et("beans", "oad"),
					et("potato", "kartul"),
					et("onion (sets or seeds)", "sibul (istikud või seemned)"),
				},
				entry.Transplanting: {
					et("cabbage", "kapsas"),
					et("cauliflower", "lillkapsas"),
					et("broccoli", "brokoli"),
					et("kale", "lehtkapsas"),
					et("tomato (in greenhouse)", "tomat (kasvuhoones)"),
					et("pepper (in greenhouse)", "paprika (kasvuhoones)"),
					et("eggplant (in greenhouse)", "baklažaan (kasvuhoones)"),
					et("zucchini (late May)", "suvikõrvits (mai lõpus)"),
					et("pumpkin (late May)", "kõrvits (mai lõpus)"),
				},
				entry.Greenhouse: {
					et("tomato", "tomat"),
					et("cucumber", "kurk"),
					et("pepper", "paprika"),
					et("eggplant", "baklažaan"),
					et("zucchini", "suvikõrvits"),
					et("basil", "basiilik"),
				},
				entry.GardenTasks: {
					et("Checking fruit tree flower buds (thinning if needed)", "Viljapuude õiepungade kontrollimine (vajadusel harvendamine)"),
					et("Planting containers and balcony plants", "Pottide ja rõdutaimede istutamine"),
					et("Adding mulch to beds", "Multši lisamine peenardele"),
					et("Weed control", "Umbrohutõrje"),
					et("Adding green matter to compost", "Rohelise materjali lisamine kompostile"),
				},
			},
			"early_june": {
				entry.DirectSowing: {
					et("beans (late varieties)", "oad (hilised sordid)"),
					et("zucchini (direct sowing)", "suvikõrvits (otse külvamine)"),
					et("cucumber (direct sowing)", "kurk (otse külvamine)"),
				},
				entry.Transplanting: {
					et("zucchini", "suvikõrvits"),
					et("pumpkin", "kõrvits"),
					et("cucumber (if soil is warm)", "kurk (kui muld on soe)"),
				},
				entry.Greenhouse: {
					et("Tomato maintenance and staking", "Tomatite hooldus ja toestamine"),
					et("Fertilizing", "Väetamine"),
					et("Ventilation", "Õhutamine"),
					et("Removing side shoots", "Võsundite eemaldamine"),
					et("Succession planting (lettuce, radish, herbs)", "Järkjärguline külvamine (salat, redis, maitsetaimed)"),
					et("Cucumber staking", "Kurkide toestamine"),
				},
				entry.GardenTasks: {
					et("Removing row covers", "Reakattematerjali eemaldamine"),
					et("Monitoring watering schedule", "Kastmisgraafiku jälgimine"),
					et("Weed control", "Umbrohutõrje"),
					et("Covering strawberries with bird netting", "Maasikate katmine linnuvõrguga"),
				},
			},
		},
	}
}

func et(en, et string) DisplayItem {
	return DisplayItem{Label: en, Alt: map[string]string{"et": et}}
}
