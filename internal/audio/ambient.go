package audio

// AmbientEmitterStart and AmbientEmitterStop are invoked when an emitter
// enters or leaves the listener's probe sphere, to start or stop a
// looping playback handle. Callers own the actual playback handle.
type AmbientEmitterStart func(id EmitterID, distances EmitterDistances)
type AmbientEmitterStop func(id EmitterID)

// AmbientField tracks which emitters are currently active (within the
// listener's probe sphere) against a map's static emitter tree, diffing
// consecutive queries instead of recomputing playback state from
// scratch every tick.
type AmbientField struct {
	tree      *EmitterTree
	distances map[EmitterID]EmitterDistances
	active    []EmitterID // sorted ascending
}

// NewAmbientField binds a built tree to the same emitters it was built
// from, so each emitter's attenuation falls off to silence at its own
// audibility radius (max_distance: sound_config.bounds.radius(),
// lib.rs:436-439) rather than one shared radius for every emitter on the
// map.
func NewAmbientField(tree *EmitterTree, emitters []emitterNode) *AmbientField {
	distances := make(map[EmitterID]EmitterDistances, len(emitters))
	for _, e := range emitters {
		distances[e.id] = EmitterDistances{MinDistance: ambientMinDistance, MaxDistance: e.radius}
	}
	return &AmbientField{tree: tree, distances: distances}
}

// Update re-queries the tree at the listener's current position and
// calls onStart/onStop for emitters that entered or left the probe
// sphere since the previous call.
func (f *AmbientField) Update(listenerPosition Vec3, onStart AmbientEmitterStart, onStop AmbientEmitterStop) {
	current := f.tree.EmittersWithin(listenerPosition)
	entered, left := diffSorted(f.active, current)
	for _, id := range left {
		onStop(id)
	}
	for _, id := range entered {
		onStart(id, f.distances[id])
	}
	f.active = current
}

// Active returns the emitters currently within range, for the debug
// manifest.
func (f *AmbientField) Active() []EmitterID {
	return append([]EmitterID(nil), f.active...)
}

// ambientTickInterval paces how often Engine re-queries the ambient
// field; it matches the listener pose's own throttle so a moving
// listener never drives more than one emitter-set diff per pose update.
const ambientTickInterval = listenerUpdateInterval
