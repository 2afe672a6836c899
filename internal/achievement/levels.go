package achievement

// levelThresholds[i] is the minimum points total for level i+1.
var levelThresholds = []int{0, 100, 250, 500, 1000, 2000, 5000}

// LevelForPoints derives the user's level from their points total: the
// highest threshold index satisfied, plus one. Never below 1.
func LevelForPoints(points int) int {
	for i := len(levelThresholds) - 1; i >= 0; i-- {
		if points >= levelThresholds[i] {
			return i + 1
		}
	}
	return 1
}

// MaxLevel is the highest reachable level.
func MaxLevel() int {
	return len(levelThresholds)
}

// PointsForNextLevel returns the threshold for the next level, or -1 when
// already at the top.
func PointsForNextLevel(points int) int {
	level := LevelForPoints(points)
	if level >= len(levelThresholds) {
		return -1
	}
	return levelThresholds[level]
}
