package geometry

import "github.com/df07/sphere-pathtracer/pkg/core"

// HittableList is an ordered collection of hittables tested by linear scan
type HittableList struct {
	objects []core.Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...core.Hittable) *HittableList {
	list := &HittableList{}
	for _, obj := range objects {
		list.Add(obj)
	}
	return list
}

// Add appends an object to the list
func (l *HittableList) Add(object core.Hittable) {
	l.objects = append(l.objects, object)
}

// Clear removes all objects
func (l *HittableList) Clear() {
	l.objects = nil
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Objects returns the objects in insertion order
func (l *HittableList) Objects() []core.Hittable {
	return l.objects
}

// Hit returns the closest hit among all objects. Each successful hit narrows
// the upper bound so later objects only report nearer intersections.
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	closestSoFar := rayT.Max

	for _, object := range l.objects {
		if hit, isHit := object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); isHit {
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, closest != nil
}
