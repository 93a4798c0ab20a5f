package util

import (
	"fmt"

	"sieteymedio/internal/rng"
)

var adjectives = []string{
	"Fast", "Slow", "Quick", "Lucky", "Unlucky", "Bold", "Sly", "Gracious", "Happy", "Grumpy", "Sleepy",
	"Red", "Blue", "Green", "Golden", "Purple", "Fuzzy", "Smiling", "Tall", "Grand", "Silent", "Prime",
	"Brave", "Daring", "Careful", "Greedy", "Patient", "Nervous",
}

var animals = []string{
	"Bull", "Lynx", "Ibex", "Stork", "Vulture", "Boar", "Hare", "Eagle", "Wolf", "Fox", "Owl",
	"Bear", "Otter", "Dolphin", "Hedgehog", "Lizard", "Goat", "Mule", "Heron", "Falcon", "Toad",
}

// random picks the words. Tests replace it to get predictable names
var random rng.Generator = rng.Crypto{}

// GetRandomName returns a random name by combining an adjective with an animal
func GetRandomName() string {
	adjectivesIndex := random.Intn(len(adjectives))
	animalsIndex := random.Intn(len(animals))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], animals[animalsIndex])
}

// RandomNicknames returns n distinct random names
// n cannot exceed the number of combinations.
func RandomNicknames(n int) []string {
	if max := len(adjectives) * len(animals); n > max {
		n = max
	}

	names := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for len(names) < n {
		name := GetRandomName()
		if seen[name] {
			continue
		}

		seen[name] = true
		names = append(names, name)
	}

	return names
}
