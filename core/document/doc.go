// Package document reads and writes controller documents.
//
// A document is YAML with two sections: the controller with its layers, and a
// flat list of objects that reference each other by id.
//
//	controller:
//	  id: 1
//	  name: Locomotion
//	  layers:
//	    - name: Base Layer
//	      stateMachine: 2
//	objects:
//	  - id: 2
//	    kind: StateMachine
//	    name: Base Layer
//	    states: [3]
//	  - id: 3
//	    kind: State
//	    name: Idle
//
// Objects marked external are referenced by the graph but stored in another
// document, so they are never scan candidates.
package document
