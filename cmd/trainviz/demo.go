package main

// demoProgram runs when no program is configured. Coordinates are fractions
// of the stage size.
const demoProgram = `
name: sparkle
steps:
  - event: lap
  - parallel:
      - name: sweep
        steps:
          - tween: {targets: [a], props: {x: 0.9}, duration: 1200ms, ease: Quad.easeInOut}
          - tween: {targets: [a], props: {x: 0.1}, duration: 1200ms, ease: Quad.easeInOut}
      - name: bounce
        steps:
          - tween: {targets: [b], props: {y: 0.9}, duration: 800ms, ease: Back.easeOut, resize: skip}
          - tween: {targets: [b], props: {y: 0.1}, duration: 800ms, ease: Sine.easeInOut}
      - name: blink
        steps:
          - tween: {targets: [c], props: {alpha: 0}, duration: 600ms}
          - delay: 300ms
          - tween: {targets: [c], props: {alpha: 1}, duration: 600ms, resize: nothing}
  - tween: {targets: [a, b, c], props: {scale: 2}, duration: 300ms, ease: Cubic.easeOut}
  - tween: {targets: [a, b, c], props: {scale: 1}, duration: 300ms}
  - delay: 250ms
`
