package task

// planReorder computes the order index updates that place the tasks in
// requested, in that order, into the slots they currently occupy within
// current. Tasks absent from requested keep their slots. Unknown ids and
// repeated ids in requested are ignored.
//
// Every slot is numbered by its position in current, so the resulting
// indexes are unique across the whole table. Only tasks whose index
// changes are returned.
func planReorder(current []Task, requested []int64) []OrderUpdate {
	slotOf := make(map[int64]int, len(current))
	for i, t := range current {
		slotOf[t.ID] = i
	}

	moving := make([]int64, 0, len(requested))
	movingSet := make(map[int64]bool, len(requested))
	for _, id := range requested {
		if _, ok := slotOf[id]; !ok || movingSet[id] {
			continue
		}
		movingSet[id] = true
		moving = append(moving, id)
	}
	if len(moving) == 0 {
		return nil
	}

	order := make([]int64, len(current))
	next := 0
	for i, t := range current {
		if movingSet[t.ID] {
			order[i] = moving[next]
			next++
			continue
		}
		order[i] = t.ID
	}

	indexOf := make(map[int64]int, len(current))
	for _, t := range current {
		indexOf[t.ID] = t.OrderIndex
	}

	var updates []OrderUpdate
	for position, id := range order {
		if indexOf[id] == position {
			continue
		}
		updates = append(updates, OrderUpdate{ID: id, OrderIndex: position})
	}
	return updates
}
