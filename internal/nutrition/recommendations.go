package nutrition

import (
	"math/rand/v2"

	"github.com/juju/errors"
	"github.com/terraincognita07/nutrismart/internal/models"
)

// DefaultRecommendationCount is how many foods the recommendation screen shows.
const DefaultRecommendationCount = 4

var (
	ErrDietNotFound   = errors.NotFoundf("recommendation list for diet")
	ErrNotEnoughFoods = errors.NotValidf("recommendation sample size")
	recommendedByDiet = buildRecommendationLists()
)

// Shuffler is satisfied by *rand.Rand.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// SampleRecommendedFoods draws n distinct foods from the diet's reference
// list. A nil rng uses the package-level source.
func SampleRecommendedFoods(diet models.Diet, n int, rng Shuffler) ([]string, error) {
	foods, ok := recommendedByDiet[diet]
	if !ok || len(foods) == 0 {
		return nil, errors.Annotatef(ErrDietNotFound, "diet %q", diet)
	}
	if n <= 0 || n > len(foods) {
		return nil, errors.Annotatef(ErrNotEnoughFoods, "%d requested, %d available", n, len(foods))
	}

	pool := make([]string, len(foods))
	copy(pool, foods)
	swap := func(i, j int) { pool[i], pool[j] = pool[j], pool[i] }
	if rng == nil {
		rand.Shuffle(len(pool), swap)
	} else {
		rng.Shuffle(len(pool), swap)
	}
	return pool[:n], nil
}

// RecommendedFoods returns a copy of the diet's full reference list.
func RecommendedFoods(diet models.Diet) []string {
	foods := recommendedByDiet[diet]
	result := make([]string, len(foods))
	copy(result, foods)
	return result
}

func buildRecommendationLists() map[models.Diet][]string {
	raw := map[models.Diet][]string{
		models.DietLowCarb: {
			"Eggs", "Avocado", "Fish", "Walnuts", "Cauliflower", "Spinach", "Broccoli", "Olive oil",
			"Almonds", "Cheese", "Mushrooms", "Beef", "Salmon", "Asparagus", "Lettuce", "Carrot",
			"Tomato", "Cucumber", "Bell pepper", "Eggplant", "Zucchini", "Brazil nut", "Celery", "Olives",
			"Chia seeds", "Flaxseed", "Coconut", "Raspberry", "Strawberry", "Cabbage", "Artichoke",
			"Onion", "Garlic", "Arugula", "Basil", "Parsley", "Endive", "Capers", "Chili pepper", "Snow peas",
			"Lemon", "Orange", "Pork", "Chicken", "Plain yogurt", "Ricotta", "Green tea", "Sparkling water",
			"Apple cider vinegar", "Coffee",
		},
		models.DietKetogenic: {
			"Bacon", "Cheddar cheese", "Lamb", "Butter", "Cream", "Coconut oil", "Wild salmon",
			"Free-range eggs", "Spinach", "Kale", "Broccoli", "Cauliflower", "Avocado", "Walnuts", "Cashews",
			"Pumpkin seeds", "Olives", "Mint tea", "Unsweetened coffee", "Parmesan cheese",
			"Free-range chicken", "Ground beef", "Shrimp", "Tuna", "Asparagus", "Zucchini", "Mushrooms", "Garlic",
			"Onion", "Chili pepper", "Fresh herbs", "Lettuce", "Arugula", "Parsley", "Basil", "Fresh cream",
			"Heavy cream", "MCT oil", "Chamomile tea", "Mozzarella cheese", "Beef", "Pork",
			"Fatty fish", "Chia seeds", "Flaxseed", "Avocado", "Lemon", "Apple cider vinegar",
			"Mineral water",
		},
		models.DietHighProtein: {
			"Chicken breast", "Egg whites", "Lean meat", "Fish", "Cottage cheese", "Greek yogurt",
			"Tuna", "Lean beef", "Salmon", "Whole eggs", "Tofu", "Tempeh", "Lentils", "Beans",
			"Quinoa", "Almonds", "Walnuts", "Pumpkin seeds", "Shrimp", "Protein isolate", "Skim milk",
			"Ricotta", "Broccoli", "Cauliflower", "Spinach", "Carrot", "Zucchini", "Lettuce", "Tomato",
			"Cucumber", "Bell pepper", "Olive oil", "Green tea", "Water",
		},
		models.DietBulking: {
			"Brown rice", "Sweet potato", "Oats", "Whole-grain pasta", "Red meat", "Chicken breast",
			"Eggs", "Salmon", "Tuna", "Quinoa", "Beans", "Chickpeas", "Lentils", "Whole milk",
			"Plain yogurt", "Cheese", "Walnuts", "Almonds", "Brazil nut", "Avocado", "Banana",
			"Strawberries", "Spinach", "Broccoli", "Carrot", "Zucchini", "Tomato", "Cucumber", "Bell pepper",
			"Olive oil", "Peanut butter", "Green tea", "Water", "Honey", "Dark chocolate",
			"Potato", "Corn", "Whole-grain bread", "Chia seeds", "Flaxseed", "Peas",
		},
	}

	lists := make(map[models.Diet][]string, len(raw))
	for diet, foods := range raw {
		seen := make(map[string]struct{}, len(foods))
		unique := make([]string, 0, len(foods))
		for _, food := range foods {
			if _, dup := seen[food]; dup {
				continue
			}
			seen[food] = struct{}{}
			unique = append(unique, food)
		}
		lists[diet] = unique
	}
	return lists
}
