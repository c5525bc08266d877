package eas

import "github.com/ethereum/go-ethereum/accounts/abi/bind"

// ContractMetaData holds the hand-maintained ABI of the attestation
// contract. Only the entries the client uses are included.
var ContractMetaData = &bind.MetaData{ABI: contractABI}

const contractABI = `[
  {"type":"function","name":"VERSION","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"attest","stateMutability":"payable","inputs":[
    {"name":"request","type":"tuple","components":[
      {"name":"schema","type":"bytes32"},
      {"name":"data","type":"tuple","components":[
        {"name":"recipient","type":"address"},
        {"name":"expirationTime","type":"uint64"},
        {"name":"revocable","type":"bool"},
        {"name":"refUUID","type":"bytes32"},
        {"name":"data","type":"bytes"},
        {"name":"value","type":"uint256"}
      ]}
    ]}
  ],"outputs":[{"name":"","type":"bytes32"}]},
  {"type":"function","name":"attestByDelegation","stateMutability":"payable","inputs":[
    {"name":"delegatedRequest","type":"tuple","components":[
      {"name":"schema","type":"bytes32"},
      {"name":"data","type":"tuple","components":[
        {"name":"recipient","type":"address"},
        {"name":"expirationTime","type":"uint64"},
        {"name":"revocable","type":"bool"},
        {"name":"refUUID","type":"bytes32"},
        {"name":"data","type":"bytes"},
        {"name":"value","type":"uint256"}
      ]},
      {"name":"signature","type":"tuple","components":[
        {"name":"v","type":"uint8"},
        {"name":"r","type":"bytes32"},
        {"name":"s","type":"bytes32"}
      ]},
      {"name":"attester","type":"address"}
    ]}
  ],"outputs":[{"name":"","type":"bytes32"}]},
  {"type":"function","name":"multiAttest","stateMutability":"payable","inputs":[
    {"name":"multiRequests","type":"tuple[]","components":[
      {"name":"schema","type":"bytes32"},
      {"name":"data","type":"tuple[]","components":[
        {"name":"recipient","type":"address"},
        {"name":"expirationTime","type":"uint64"},
        {"name":"revocable","type":"bool"},
        {"name":"refUUID","type":"bytes32"},
        {"name":"data","type":"bytes"},
        {"name":"value","type":"uint256"}
      ]}
    ]}
  ],"outputs":[{"name":"","type":"bytes32[]"}]},
  {"type":"function","name":"multiAttestByDelegation","stateMutability":"payable","inputs":[
    {"name":"multiDelegatedRequests","type":"tuple[]","components":[
      {"name":"schema","type":"bytes32"},
      {"name":"data","type":"tuple[]","components":[
        {"name":"recipient","type":"address"},
        {"name":"expirationTime","type":"uint64"},
        {"name":"revocable","type":"bool"},
        {"name":"refUUID","type":"bytes32"},
        {"name":"data","type":"bytes"},
        {"name":"value","type":"uint256"}
      ]},
      {"name":"signatures","type":"tuple[]","components":[
        {"name":"v","type":"uint8"},
        {"name":"r","type":"bytes32"},
        {"name":"s","type":"bytes32"}
      ]},
      {"name":"attester","type":"address"}
    ]}
  ],"outputs":[{"name":"","type":"bytes32[]"}]},
  {"type":"function","name":"revoke","stateMutability":"payable","inputs":[
    {"name":"request","type":"tuple","components":[
      {"name":"schema","type":"bytes32"},
      {"name":"data","type":"tuple","components":[
        {"name":"uuid","type":"bytes32"},
        {"name":"value","type":"uint256"}
      ]}
    ]}
  ],"outputs":[]},
  {"type":"function","name":"revokeByDelegation","stateMutability":"payable","inputs":[
    {"name":"delegatedRequest","type":"tuple","components":[
      {"name":"schema","type":"bytes32"},
      {"name":"data","type":"tuple","components":[
        {"name":"uuid","type":"bytes32"},
        {"name":"value","type":"uint256"}
      ]},
      {"name":"signature","type":"tuple","components":[
        {"name":"v","type":"uint8"},
        {"name":"r","type":"bytes32"},
        {"name":"s","type":"bytes32"}
      ]},
      {"name":"revoker","type":"address"}
    ]}
  ],"outputs":[]},
  {"type":"function","name":"multiRevoke","stateMutability":"payable","inputs":[
    {"name":"multiRequests","type":"tuple[]","components":[
      {"name":"schema","type":"bytes32"},
      {"name":"data","type":"tuple[]","components":[
        {"name":"uuid","type":"bytes32"},
        {"name":"value","type":"uint256"}
      ]}
    ]}
  ],"outputs":[]},
  {"type":"function","name":"multiRevokeByDelegation","stateMutability":"payable","inputs":[
    {"name":"multiDelegatedRequests","type":"tuple[]","components":[
      {"name":"schema","type":"bytes32"},
      {"name":"data","type":"tuple[]","components":[
        {"name":"uuid","type":"bytes32"},
        {"name":"value","type":"uint256"}
      ]},
      {"name":"signatures","type":"tuple[]","components":[
        {"name":"v","type":"uint8"},
        {"name":"r","type":"bytes32"},
        {"name":"s","type":"bytes32"}
      ]},
      {"name":"revoker","type":"address"}
    ]}
  ],"outputs":[]},
  {"type":"function","name":"getAttestation","stateMutability":"view","inputs":[
    {"name":"uuid","type":"bytes32"}
  ],"outputs":[
    {"name":"","type":"tuple","components":[
      {"name":"uuid","type":"bytes32"},
      {"name":"schema","type":"bytes32"},
      {"name":"time","type":"uint64"},
      {"name":"expirationTime","type":"uint64"},
      {"name":"revocationTime","type":"uint64"},
      {"name":"refUUID","type":"bytes32"},
      {"name":"recipient","type":"address"},
      {"name":"attester","type":"address"},
      {"name":"revocable","type":"bool"},
      {"name":"data","type":"bytes"}
    ]}
  ]},
  {"type":"function","name":"isAttestationValid","stateMutability":"view","inputs":[
    {"name":"uuid","type":"bytes32"}
  ],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"isAttestationRevoked","stateMutability":"view","inputs":[
    {"name":"uuid","type":"bytes32"}
  ],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"timestamp","stateMutability":"nonpayable","inputs":[
    {"name":"data","type":"bytes32"}
  ],"outputs":[{"name":"","type":"uint64"}]},
  {"type":"function","name":"getTimestamp","stateMutability":"view","inputs":[
    {"name":"data","type":"bytes32"}
  ],"outputs":[{"name":"","type":"uint64"}]},
  {"type":"function","name":"revokeOffchain","stateMutability":"nonpayable","inputs":[
    {"name":"data","type":"bytes32"}
  ],"outputs":[{"name":"","type":"uint64"}]},
  {"type":"function","name":"getRevokeOffchain","stateMutability":"view","inputs":[
    {"name":"revoker","type":"address"},
    {"name":"data","type":"bytes32"}
  ],"outputs":[{"name":"","type":"uint64"}]},
  {"type":"event","name":"Attested","inputs":[
    {"name":"recipient","type":"address","indexed":true},
    {"name":"attester","type":"address","indexed":true},
    {"name":"uuid","type":"bytes32","indexed":false},
    {"name":"schema","type":"bytes32","indexed":true}
  ]},
  {"type":"event","name":"Revoked","inputs":[
    {"name":"recipient","type":"address","indexed":true},
    {"name":"attester","type":"address","indexed":true},
    {"name":"uuid","type":"bytes32","indexed":false},
    {"name":"schema","type":"bytes32","indexed":true}
  ]},
  {"type":"event","name":"Timestamped","inputs":[
    {"name":"data","type":"bytes32","indexed":true},
    {"name":"timestamp","type":"uint64","indexed":true}
  ]},
  {"type":"event","name":"RevokedOffchain","inputs":[
    {"name":"revoker","type":"address","indexed":true},
    {"name":"data","type":"bytes32","indexed":true},
    {"name":"timestamp","type":"uint64","indexed":true}
  ]}
]`
