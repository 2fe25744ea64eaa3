package seed

import "github.com/craftvine/craftvine-backend/pkg/enums"

var categorySeeds = []categorySeed{
	{"Ceramics", "Hand-thrown pottery and stoneware."},
	{"Woodwork", "Carved, turned and joined pieces in local hardwoods."},
	{"Textiles", "Woven, dyed and stitched goods."},
	{"Pantry", "Small-batch preserves, honey and dry goods sold by weight."},
	{"Soaps & Candles", "Cold-process soap and poured candles."},
	{"Jewelry", "Metal, stone and glass adornments."},
	{"Leather", "Cut and stitched leather goods."},
	{"Paper & Print", "Letterpress, risograph and hand-bound paper goods."},
}

var sellerSeeds = []sellerSeed{
	{"kiln@quietclay.test", "Quiet Clay Studio", "Wood-fired stoneware from a backyard kiln.", "Asturias"},
	{"workshop@aldertree.test", "Alder & Tree", "Green woodworking with hand tools only.", "Galicia"},
	{"loom@tierraloom.test", "Tierra Loom", "Naturally dyed wool on a four-shaft loom.", "Oaxaca"},
	{"orchard@lindenhoney.test", "Linden Honey Co", "Raw honey and orchard preserves.", "Extremadura"},
	{"hello@saltandtallow.test", "Salt & Tallow", "Soap the slow way, cured six weeks.", "Provence"},
	{"bench@emberforge.test", "Ember Forge", "Hammered copper and recycled silver.", "Andalucía"},
	{"studio@hidehouse.test", "Hide House", "Veg-tanned leather, saddle stitched.", "Tuscany"},
	{"press@inkandrag.test", "Ink & Rag", "Letterpress prints on cotton rag.", "Porto"},
	{"shed@norwoodturning.test", "Norwood Turning", "Bowls and boards turned from storm-felled trees.", "Devon"},
	{"atelier@madderroot.test", "Madder Root", "Block-printed linen in madder and indigo.", "Jaipur"},
}

var productSeeds = []productSeed{
	// Quiet Clay Studio
	{"kiln@quietclay.test", "Ceramics", "Wood-fired tea bowl", "Shino glaze, no two alike.", []string{"teaware", "stoneware"}, enums.ProductUnitPiece, 3800, "14"},
	{"kiln@quietclay.test", "Ceramics", "Stoneware dinner plate", "27cm, speckled buff clay.", []string{"tableware"}, enums.ProductUnitPiece, 4200, "22"},
	{"kiln@quietclay.test", "Ceramics", "Salt-glazed jug", "Holds a litre, drips nowhere.", []string{"tableware", "salt-glaze"}, enums.ProductUnitPiece, 6500, "6"},
	{"kiln@quietclay.test", "Ceramics", "Espresso cup pair", "Stacking pair, unglazed rim.", []string{"teaware"}, enums.ProductUnitPiece, 3400, "18"},

	// Alder & Tree
	{"workshop@aldertree.test", "Woodwork", "Carved serving spoon", "Sycamore, finished in walnut oil.", []string{"kitchen", "sycamore"}, enums.ProductUnitPiece, 2600, "30"},
	{"workshop@aldertree.test", "Woodwork", "Oak coat rack", "Five pegs, split from one board.", []string{"home"}, enums.ProductUnitPiece, 7800, "9"},
	{"workshop@aldertree.test", "Woodwork", "Hazel garden dibber", "Turned point, burned depth marks.", []string{"garden"}, enums.ProductUnitPiece, 1500, "25"},

	// Tierra Loom
	{"loom@tierraloom.test", "Textiles", "Handwoven wool throw", "Cochineal and walnut stripe.", []string{"wool", "natural-dye"}, enums.ProductUnitPiece, 18500, "4"},
	{"loom@tierraloom.test", "Textiles", "Table runner", "Undyed churra wool, 180cm.", []string{"wool", "table"}, enums.ProductUnitPiece, 9200, "7"},
	{"loom@tierraloom.test", "Textiles", "Woven wall hanging", "Indigo gradient on cotton warp.", []string{"indigo", "wall"}, enums.ProductUnitPiece, 12400, "3"},

	// Linden Honey Co: pantry goods sold by weight
	{"orchard@lindenhoney.test", "Pantry", "Raw linden honey", "Cold-extracted, unfiltered.", []string{"honey", "raw"}, enums.ProductUnitKilogram, 2400, "18.500"},
	{"orchard@lindenhoney.test", "Pantry", "Quince membrillo", "Sliced from the block.", []string{"preserve"}, enums.ProductUnitKilogram, 3200, "6.250"},
	{"orchard@lindenhoney.test", "Pantry", "Dried fig garland", "Strung figs, sold per string.", []string{"fruit"}, enums.ProductUnitPiece, 1800, "40"},
	{"orchard@lindenhoney.test", "Pantry", "Smoked paprika", "Oak-smoked, stone ground.", []string{"spice"}, enums.ProductUnitGram, 4, "2400"},
	{"orchard@lindenhoney.test", "Pantry", "Orchard apple syrup", "Pressed and reduced, nothing added.", []string{"syrup"}, enums.ProductUnitLiter, 2900, "12.000"},

	// Salt & Tallow
	{"hello@saltandtallow.test", "Soaps & Candles", "Olive & tallow soap bar", "Six-week cure, unscented.", []string{"soap", "unscented"}, enums.ProductUnitPiece, 900, "120"},
	{"hello@saltandtallow.test", "Soaps & Candles", "Beeswax pillar candle", "Burns 40 hours.", []string{"beeswax"}, enums.ProductUnitPiece, 2200, "35"},
	{"hello@saltandtallow.test", "Soaps & Candles", "Lavender salt scrub", "Coarse grey salt and lavender oil.", []string{"bath"}, enums.ProductUnitKilogram, 1900, "9.500"},

	// Ember Forge
	{"bench@emberforge.test", "Jewelry", "Hammered copper cuff", "Forged, annealed, waxed.", []string{"copper"}, enums.ProductUnitPiece, 5400, "11"},
	{"bench@emberforge.test", "Jewelry", "Recycled silver ring", "Sand-cast from sterling scrap.", []string{"silver", "recycled"}, enums.ProductUnitPiece, 8800, "8"},
	{"bench@emberforge.test", "Jewelry", "Sea glass pendant", "Found glass, bezel set.", []string{"glass"}, enums.ProductUnitPiece, 4600, "5"},

	// Hide House
	{"studio@hidehouse.test", "Leather", "Veg-tan belt", "Solid brass buckle, saddle stitched.", []string{"belt", "veg-tan"}, enums.ProductUnitPiece, 9500, "16"},
	{"studio@hidehouse.test", "Leather", "Card wallet", "Four pockets, burnished edges.", []string{"wallet"}, enums.ProductUnitPiece, 5800, "24"},
	{"studio@hidehouse.test", "Leather", "Leather cord", "3mm round cord, cut to length.", []string{"cord"}, enums.ProductUnitMeter, 350, "85.000"},

	// Ink & Rag
	{"press@inkandrag.test", "Paper & Print", "Letterpress city map", "Two-colour print on cotton rag.", []string{"print", "map"}, enums.ProductUnitPiece, 4400, "50"},
	{"press@inkandrag.test", "Paper & Print", "Hand-bound notebook", "Coptic stitch, lies flat.", []string{"notebook"}, enums.ProductUnitPiece, 2800, "32"},
	{"press@inkandrag.test", "Paper & Print", "Risograph calendar", "Twelve sheets, two inks.", []string{"print"}, enums.ProductUnitPiece, 3600, "27"},

	// Norwood Turning
	{"shed@norwoodturning.test", "Woodwork", "Turned ash bowl", "From a storm-felled ash, 24cm.", []string{"bowl", "ash"}, enums.ProductUnitPiece, 8200, "7"},
	{"shed@norwoodturning.test", "Woodwork", "End-grain chopping board", "Oak blocks, food-safe oil.", []string{"kitchen", "oak"}, enums.ProductUnitPiece, 11800, "10"},

	// Madder Root
	{"atelier@madderroot.test", "Textiles", "Block-printed linen", "Madder red repeat, sold by the metre.", []string{"linen", "block-print"}, enums.ProductUnitMeter, 2300, "64.500"},
	{"atelier@madderroot.test", "Textiles", "Indigo napkin set", "Set of four, pre-washed.", []string{"indigo", "table"}, enums.ProductUnitPiece, 4800, "15"},
	{"atelier@madderroot.test", "Textiles", "Drawstring bread bag", "Keeps crusts crisp.", []string{"kitchen", "linen"}, enums.ProductUnitPiece, 2100, "28"},
}
