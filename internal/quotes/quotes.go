// Package quotes supplies the motivational flavor text shown alongside the
// daily workout.
package quotes

import "math/rand/v2"

var quotes = []string{
	"I don't have a reason to fight. I fight because I want to survive.",
	"I'm not a hero. I'm just someone who doesn't want to lose.",
	"The weak die, and the strong survive. That's the law of nature.",
	"I alone level up.",
	"I'll become stronger. Strong enough that no one can threaten me ever again.",
	"If I can't win with skill, I'll win with numbers. If I can't win with numbers, I'll win with strength.",
	"I'm not going to die here. I'm going to survive and become stronger.",
	"Fear is not evil. It tells you what your weakness is. And once you know your weakness, you can become stronger.",
	"I will hunt until the end of my life.",
	"I'm not a hunter who relies on luck. I'm a hunter who relies on preparation.",
	"The only thing I can trust is the power I build with my own hands.",
	"Arise.",
	"I'll show you what a real hunter looks like.",
	"I don't need a system to tell me what to do. I'll decide my own path.",
	"Every day is a chance to become stronger than yesterday.",
}

// Random returns a random quote.
func Random() string {
	return quotes[rand.IntN(len(quotes))]
}
